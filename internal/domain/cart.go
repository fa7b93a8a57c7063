package domain

import "encoding/json"

type CartLine struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

func (l CartLine) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// UnmarshalJSON also accepts snapshots written by the browser storefront,
// which stored lines as {id, name, price, quantity}.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID      *int64 `json:"productId"`
		ID             *int64 `json:"id"`
		Name           string `json:"name"`
		UnitPriceCents *int64 `json:"unitPriceCents"`
		Price          *int64 `json:"price"`
		Quantity       int    `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*l = CartLine{Name: raw.Name, Quantity: raw.Quantity}
	switch {
	case raw.ProductID != nil:
		l.ProductID = *raw.ProductID
	case raw.ID != nil:
		l.ProductID = *raw.ID
	}
	switch {
	case raw.UnitPriceCents != nil:
		l.UnitPriceCents = *raw.UnitPriceCents
	case raw.Price != nil:
		l.UnitPriceCents = *raw.Price
	}
	return nil
}

// Valid reports whether the line satisfies the cart invariants on its own.
// Uniqueness of ProductID across lines is checked by the cart store.
func (l CartLine) Valid() bool {
	return l.ProductID > 0 && l.UnitPriceCents >= 0 && l.Quantity >= 1
}

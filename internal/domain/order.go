package domain

type OrderItem struct {
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"totalCents"`
}

type Payment struct {
	ID          int64         `json:"id,omitempty"`
	AmountCents int64         `json:"amountCents"`
	Method      PaymentMethod `json:"method"`
	PaidAt      *Timestamp    `json:"paidAt"`
}

type Order struct {
	ID             int64       `json:"id"`
	CustomerID     int64       `json:"customerId,omitempty"`
	CustomerName   string      `json:"customerName"`
	CustomerEmail  string      `json:"customerEmail,omitempty"`
	Status         OrderStatus `json:"status"`
	CreatedAt      Timestamp   `json:"createdAt"`
	TotalCents     int64       `json:"totalCents"`
	TotalPaidCents *int64      `json:"totalPaidCents"`
	Items          []OrderItem `json:"items"`
	Payments       []Payment   `json:"payments"`
}

// PaidCents treats a missing total as nothing paid.
func (o Order) PaidCents() int64 {
	if o.TotalPaidCents == nil {
		return 0
	}
	return *o.TotalPaidCents
}

func (o Order) RemainingCents() int64 {
	return o.TotalCents - o.PaidCents()
}

type OrderRequestItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type OrderRequest struct {
	CustomerID int64              `json:"customerId"`
	Items      []OrderRequestItem `json:"items"`
}

type PaymentRequest struct {
	OrderID     int64         `json:"orderId"`
	AmountCents int64         `json:"amountCents"`
	Method      PaymentMethod `json:"method"`
}

type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}

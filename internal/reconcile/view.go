package reconcile

import (
	"fmt"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/money"
)

// State is the single action classification of an order. Presentation code
// reads it and never re-derives it from the status field.
type State int

const (
	StateCancelled State = iota + 1
	StateSettled
	StatePaymentPending
)

func (s State) String() string {
	switch s {
	case StateCancelled:
		return "cancelled"
	case StateSettled:
		return "settled"
	case StatePaymentPending:
		return "payment_pending"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MethodVariant selects how card payments are offered.
type MethodVariant string

const (
	VariantCard  MethodVariant = "card"
	VariantSplit MethodVariant = "split"
)

func ParseVariant(s string) (MethodVariant, error) {
	switch v := MethodVariant(s); v {
	case VariantCard, VariantSplit:
		return v, nil
	default:
		return "", fmt.Errorf("unknown payment method variant %q", s)
	}
}

// Methods lists the payment methods offered in the selector for v.
func (v MethodVariant) Methods() []domain.PaymentMethod {
	if v == VariantSplit {
		return []domain.PaymentMethod{
			domain.PaymentMethodPix,
			domain.PaymentMethodCreditCard,
			domain.PaymentMethodDebitCard,
			domain.PaymentMethodBoleto,
		}
	}
	return []domain.PaymentMethod{
		domain.PaymentMethodPix,
		domain.PaymentMethodCard,
		domain.PaymentMethodBoleto,
	}
}

type PaymentEntry struct {
	AmountCents int64                `json:"amountCents"`
	Amount      string               `json:"amount"`
	Method      domain.PaymentMethod `json:"method"`
	PaidAt      *domain.Timestamp    `json:"paidAt"`
}

type ItemEntry struct {
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
}

// View is the reconciled representation of one freshly fetched order.
type View struct {
	OrderID        int64              `json:"orderId"`
	Status         domain.OrderStatus `json:"status"`
	CustomerName   string             `json:"customerName"`
	CreatedAt      domain.Timestamp   `json:"createdAt"`
	TotalCents     int64              `json:"totalCents"`
	PaidCents      int64              `json:"paidCents"`
	RemainingCents int64              `json:"remainingCents"`
	State          State              `json:"state"`

	// RefundPending is set for cancelled orders that had received money.
	RefundPending bool `json:"refundPending"`
	// PartialPaymentWarning is set for pending orders with a partial payment;
	// cancelling them triggers a refund of PaidCents.
	PartialPaymentWarning bool `json:"partialPaymentWarning"`

	// PayableDefault and Methods are only populated in StatePaymentPending.
	PayableDefault string                 `json:"payableDefault,omitempty"`
	Methods        []domain.PaymentMethod `json:"methods,omitempty"`

	CanPay    bool `json:"canPay"`
	CanCancel bool `json:"canCancel"`

	Items   []ItemEntry    `json:"items"`
	History []PaymentEntry `json:"history"`
}

// Reconcile classifies order. The first matching rule wins:
// cancelled, then settled (nothing remaining or PAID), then payment pending.
func Reconcile(order domain.Order, variant MethodVariant) (*View, error) {
	if !order.Status.Valid() {
		return nil, &UnrecognizedStatusError{Status: order.Status}
	}

	paid := order.PaidCents()
	remaining := order.TotalCents - paid

	v := &View{
		OrderID:        order.ID,
		Status:         order.Status,
		CustomerName:   order.CustomerName,
		CreatedAt:      order.CreatedAt,
		TotalCents:     order.TotalCents,
		PaidCents:      paid,
		RemainingCents: remaining,
		Items:          make([]ItemEntry, 0, len(order.Items)),
		History:        make([]PaymentEntry, 0, len(order.Payments)),
	}

	for _, it := range order.Items {
		v.Items = append(v.Items, ItemEntry{
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents,
		})
	}
	for _, p := range order.Payments {
		v.History = append(v.History, PaymentEntry{
			AmountCents: p.AmountCents,
			Amount:      money.FormatMajor(p.AmountCents),
			Method:      p.Method,
			PaidAt:      p.PaidAt,
		})
	}

	switch {
	case order.Status == domain.OrderStatusCancelled:
		v.State = StateCancelled
		v.RefundPending = paid > 0
	case remaining <= 0 || order.Status == domain.OrderStatusPaid:
		v.State = StateSettled
	default:
		v.State = StatePaymentPending
		v.PayableDefault = money.FormatMajor(remaining)
		v.Methods = variant.Methods()
		v.PartialPaymentWarning = paid > 0
		v.CanPay = true
		v.CanCancel = true
	}
	return v, nil
}

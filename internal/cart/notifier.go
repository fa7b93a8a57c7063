package cart

import (
	"fmt"

	"github.com/fjod/storefront/internal/domain"
	"go.uber.org/zap"
)

// Notifier receives refresh requests after the cart has been persisted.
type Notifier interface {
	// ItemAdded carries the transient "<name> added" message and the new badge count.
	ItemAdded(message string, totalQuantity int)
	// CartChanged asks for a full re-render of the cart view.
	CartChanged(lines []domain.CartLine, totalCents int64)
}

func AddedMessage(name string) string {
	return fmt.Sprintf("%s added", name)
}

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) ItemAdded(message string, totalQuantity int) {
	n.log.Info(message, zap.Int("cart_quantity", totalQuantity))
}

func (n *LogNotifier) CartChanged(lines []domain.CartLine, totalCents int64) {
	n.log.Debug("cart changed", zap.Int("lines", len(lines)), zap.Int64("total_cents", totalCents))
}

type nopNotifier struct{}

func (nopNotifier) ItemAdded(string, int)                {}
func (nopNotifier) CartChanged([]domain.CartLine, int64) {}

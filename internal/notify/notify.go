// Package notify defines the fire-and-forget notification contract. Actual
// email delivery lives outside this service; the default implementation only
// records what would have been sent. Failures are logged and never propagated
// into the order-creation result.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"backend/internal/cart"
	"backend/internal/models"
)

// Notifier dispatches order notifications. Implementations must be safe to
// call after the order is already persisted; errors are the implementation's
// problem to log, not the caller's to handle.
type Notifier interface {
	NotifyCustomer(ctx context.Context, order models.Order)
	NotifyStaff(ctx context.Context, order models.Order)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that only logs the dispatch.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) NotifyCustomer(ctx context.Context, order models.Order) {
	email := ""
	if order.Email != nil {
		email = *order.Email
	}
	if email == "" {
		log.Debug().Str("reference", order.OrderReference).Msg("customer left no email, skipping notification")
		return
	}
	log.Info().
		Str("reference", order.OrderReference).
		Str("email", email).
		Str("total", cart.FormatPeso(order.TotalCentavos)).
		Msg("customer order confirmation dispatched")
}

func (logNotifier) NotifyStaff(ctx context.Context, order models.Order) {
	log.Info().
		Str("reference", order.OrderReference).
		Int("quantity", order.Quantity).
		Str("total", cart.FormatPeso(order.TotalCentavos)).
		Msg("staff new-order notification dispatched")
}

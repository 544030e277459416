// Package admission decides whether a new order may be accepted right now.
// Three independent conditions are combined, in strict order: the manual
// kill-switch, the operating-hours window and the rolling daily quota of
// summed item quantity over today's pending orders. All day and hour math
// runs in the bakery's timezone, not the server's.
package admission

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"backend/internal/models"
	"backend/internal/store"
)

// Reason is the machine-readable code attached to an unavailable decision.
type Reason string

const (
	ReasonManuallyClosed   Reason = "manually_closed"
	ReasonOutsideHours     Reason = "outside_hours"
	ReasonMaxOrdersReached Reason = "max_orders_reached"
)

// ErrDependencyUnavailable is returned by Authorize when the settings row or
// the pending-quantity aggregate cannot be read. The advisory Probe path
// never returns it; it fails open instead.
var ErrDependencyUnavailable = errors.New("admission dependency unavailable")

// Decision is the gate's verdict plus the counters clients display.
type Decision struct {
	Available   bool   `json:"available"`
	Reason      Reason `json:"reason,omitempty"`
	Current     int    `json:"current"`
	Max         int    `json:"max"`
	HoursStart  int    `json:"hoursStart"`
	HoursEnd    int    `json:"hoursEnd"`
	CurrentHour int    `json:"currentHour"`
}

// Message renders the human-readable companion to the reason code.
func (d Decision) Message() string {
	switch d.Reason {
	case ReasonManuallyClosed:
		return "Ordering is temporarily closed. Please check back later."
	case ReasonOutsideHours:
		return "Ordering is only open during store hours."
	case ReasonMaxOrdersReached:
		return "We have reached today's order limit. Please try again tomorrow."
	default:
		return ""
	}
}

// Evaluate is the pure decision function. The checks short-circuit in order:
// kill-switch, hours window [start,end), then quota (pendingQty >= max).
func Evaluate(settings models.Settings, pendingQty int, now time.Time) Decision {
	decision := Decision{
		Current:     pendingQty,
		Max:         settings.MaxDailyOrders,
		HoursStart:  settings.OperatingHoursStart,
		HoursEnd:    settings.OperatingHoursEnd,
		CurrentHour: now.Hour(),
	}

	if !settings.OrderFormEnabled {
		decision.Reason = ReasonManuallyClosed
		return decision
	}

	if now.Hour() < settings.OperatingHoursStart || now.Hour() >= settings.OperatingHoursEnd {
		decision.Reason = ReasonOutsideHours
		return decision
	}

	if pendingQty >= settings.MaxDailyOrders {
		decision.Reason = ReasonMaxOrdersReached
		return decision
	}

	decision.Available = true
	return decision
}

// Checker performs the reads Evaluate needs. It is safe to call from both
// the advisory probe endpoint and the authoritative submission path.
type Checker struct {
	settings store.SettingsStore
	orders   store.OrderStore
	location *time.Location

	// NowFunc overrides the wall clock in tests. Leave nil in production.
	NowFunc func() time.Time
}

func NewChecker(settings store.SettingsStore, orders store.OrderStore, location *time.Location) *Checker {
	return &Checker{settings: settings, orders: orders, location: location}
}

// Now returns the current time in the bakery's timezone.
func (c *Checker) Now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc().In(c.location)
	}
	return time.Now().In(c.location)
}

// DayBounds returns the inclusive start and end of the local calendar day
// containing t.
func (c *Checker) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.location)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

func (c *Checker) evaluate(ctx context.Context) (Decision, error) {
	settings, err := c.settings.Get(ctx)
	if err != nil {
		return Decision{}, err
	}

	now := c.Now()
	from, to := c.DayBounds(now)
	pendingQty, err := c.orders.SumPendingQuantity(ctx, from, to)
	if err != nil {
		return Decision{}, err
	}

	return Evaluate(settings, pendingQty, now), nil
}

// Probe is the non-authoritative read used by the ordering UI. Storage
// failures fail open: keeping the storefront reachable outweighs strict quota
// display, since submission re-checks authoritatively anyway.
func (c *Checker) Probe(ctx context.Context) Decision {
	decision, err := c.evaluate(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("availability probe failed, failing open")
		return Decision{Available: true}
	}
	return decision
}

// Authorize is the authoritative check run at submission time. Beyond the
// advisory rules it also rejects a submission whose own quantity would push
// the day's pending sum past the quota. Storage failures surface as
// ErrDependencyUnavailable for the caller to map to a retryable error.
func (c *Checker) Authorize(ctx context.Context, quantity int) (Decision, error) {
	decision, err := c.evaluate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("authoritative admission check failed")
		return Decision{}, errors.Join(ErrDependencyUnavailable, err)
	}
	if decision.Available && decision.Current+quantity > decision.Max {
		decision.Available = false
		decision.Reason = ReasonMaxOrdersReached
	}
	return decision, nil
}

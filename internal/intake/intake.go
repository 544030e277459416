// Package intake is the single entry point for creating orders. It validates
// the submission, re-runs the admission gate authoritatively, mints a
// reference and persists the order in status pending.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"backend/internal/admission"
	"backend/internal/cart"
	"backend/internal/models"
	"backend/internal/reference"
	"backend/internal/store"
)

// referenceAttempts bounds the regenerate-on-collision retry loop. Collisions
// are ~1-in-33M per day, so more than one retry is already paranoia.
const referenceAttempts = 3

// ValidationError marks a user-correctable submission problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AdmissionDeniedError carries the gate's decision for a rejected submission.
type AdmissionDeniedError struct {
	Decision admission.Decision
}

func (e AdmissionDeniedError) Error() string {
	return fmt.Sprintf("order admission denied: %s", e.Decision.Reason)
}

// Customer is the contact block of a submission. Name, location and contact
// number are required; email is optional.
type Customer struct {
	Name          string
	Location      string
	Email         string
	ContactNumber string
}

// Submission is a validated-cart order request.
type Submission struct {
	Customer        Customer
	Cart            *cart.Cart
	PaymentProofURL string
	TermsAccepted   bool
}

// Service coordinates gate, codec and store for order creation.
type Service struct {
	orders      store.OrderStore
	checker     *admission.Checker
	codec       *reference.Codec
	notifier    Notifier
	maxPerOrder int
}

// Notifier is the slice of notify.Notifier this package needs.
type Notifier interface {
	NotifyCustomer(ctx context.Context, order models.Order)
	NotifyStaff(ctx context.Context, order models.Order)
}

func NewService(orders store.OrderStore, checker *admission.Checker, codec *reference.Codec, notifier Notifier, maxPerOrder int) *Service {
	return &Service{
		orders:      orders,
		checker:     checker,
		codec:       codec,
		notifier:    notifier,
		maxPerOrder: maxPerOrder,
	}
}

func (s *Service) validate(sub Submission) error {
	if strings.TrimSpace(sub.Customer.Name) == "" {
		return ValidationError{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(sub.Customer.Location) == "" {
		return ValidationError{Field: "location", Message: "required"}
	}
	if strings.TrimSpace(sub.Customer.ContactNumber) == "" {
		return ValidationError{Field: "contactNumber", Message: "required"}
	}
	if !sub.TermsAccepted {
		return ValidationError{Field: "termsAccepted", Message: "terms must be accepted"}
	}
	if sub.Cart == nil || sub.Cart.TotalQuantity() == 0 {
		return ValidationError{Field: "items", Message: "cart is empty"}
	}
	if sub.Cart.TotalQuantity() > s.maxPerOrder {
		return ValidationError{
			Field:   "items",
			Message: fmt.Sprintf("at most %d items per order", s.maxPerOrder),
		}
	}
	return nil
}

// Submit runs the full intake flow and returns the persisted order.
// Notification dispatch is best-effort and can never undo a created order.
func (s *Service) Submit(ctx context.Context, sub Submission) (models.Order, error) {
	if err := s.validate(sub); err != nil {
		return models.Order{}, err
	}

	summary := sub.Cart.ToOrderSummary()

	decision, err := s.checker.Authorize(ctx, summary.TotalQuantity)
	if err != nil {
		return models.Order{}, err
	}
	if !decision.Available {
		return models.Order{}, AdmissionDeniedError{Decision: decision}
	}

	order := models.Order{
		CustomerName:  strings.TrimSpace(sub.Customer.Name),
		Location:      strings.TrimSpace(sub.Customer.Location),
		ContactNumber: strings.TrimSpace(sub.Customer.ContactNumber),
		OrderSummary:  summary.OrderString,
		Quantity:      summary.TotalQuantity,
		TotalCentavos: summary.TotalCentavos,
		TermsAccepted: true,
		Status:        models.StatusPending,
	}
	if email := strings.TrimSpace(sub.Customer.Email); email != "" {
		order.Email = &email
	}
	if proof := strings.TrimSpace(sub.PaymentProofURL); proof != "" {
		order.PaymentProofURL = &proof
	}

	if err := s.insertWithFreshReference(ctx, &order); err != nil {
		return models.Order{}, err
	}

	log.Info().
		Str("reference", order.OrderReference).
		Int("quantity", order.Quantity).
		Msg("order created")

	s.notifier.NotifyCustomer(ctx, order)
	s.notifier.NotifyStaff(ctx, order)

	return order, nil
}

// insertWithFreshReference mints a reference and inserts, regenerating on a
// store-level uniqueness violation up to referenceAttempts times.
func (s *Service) insertWithFreshReference(ctx context.Context, order *models.Order) error {
	var err error
	for attempt := 1; attempt <= referenceAttempts; attempt++ {
		order.OrderReference = s.codec.Generate(s.checker.Now())
		err = s.orders.Insert(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrDuplicateReference) {
			return errors.Join(admission.ErrDependencyUnavailable, err)
		}
		log.Warn().
			Str("reference", order.OrderReference).
			Int("attempt", attempt).
			Msg("order reference collision, regenerating")
	}
	return errors.Join(admission.ErrDependencyUnavailable, err)
}

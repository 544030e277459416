package models

import (
	"fmt"
	"time"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the five known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// allowedTransitions is the single source of truth for legal status changes.
// Setting the same status again is always allowed and only bumps UpdatedAt.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusProcessing: true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	return allowedTransitions[from][to]
}

// IllegalTransitionError identifies a rejected status change pair.
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition: %s -> %s", e.From, e.To)
}

// Order is the persisted order record. Status is only mutated through the
// transition table; OrderReference is immutable once set.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderReference  string      `gorm:"size:32;uniqueIndex;not null" json:"orderReference"`
	CustomerName    string      `gorm:"size:128;not null" json:"customerName"`
	Location        string      `gorm:"size:255;not null" json:"location"`
	Email           *string     `gorm:"size:128" json:"email,omitempty"`
	ContactNumber   string      `gorm:"size:32;not null" json:"contactNumber"`
	OrderSummary    string      `gorm:"type:text;not null" json:"orderSummary"`
	Quantity        int         `gorm:"not null" json:"quantity"`
	TotalCentavos   int64       `gorm:"not null" json:"totalCentavos"`
	TermsAccepted   bool        `gorm:"not null" json:"termsAccepted"`
	Status          OrderStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	PaymentProofURL *string     `gorm:"size:255" json:"paymentProofUrl,omitempty"`
	Notes           string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// PublicView strips fields that must not leave the tracking endpoint.
type PublicOrderView struct {
	OrderReference string      `json:"orderReference"`
	CustomerName   string      `json:"customerName"`
	OrderSummary   string      `json:"orderSummary"`
	Quantity       int         `json:"quantity"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// PublicView returns the customer-safe projection used by tracking lookups.
// Contact, location and email are intentionally withheld.
func (o Order) PublicView() PublicOrderView {
	return PublicOrderView{
		OrderReference: o.OrderReference,
		CustomerName:   o.CustomerName,
		OrderSummary:   o.OrderSummary,
		Quantity:       o.Quantity,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusProcessing, false}, // must pass through confirmed
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusProcessing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatesHaveNoOutgoingTransitions(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled}
	for _, terminal := range []OrderStatus{StatusCompleted, StatusCancelled} {
		for _, to := range all {
			if to == terminal {
				continue
			}
			assert.Falsef(t, CanTransition(terminal, to), "%s -> %s must be illegal", terminal, to)
		}
	}
}

func TestSettingSameStatusIsIdempotentLegal(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled} {
		assert.Truef(t, CanTransition(s, s), "%s -> %s must be legal", s, s)
	}
}

func TestCanTransitionRejectsUnknownStatuses(t *testing.T) {
	assert.False(t, CanTransition("pending", "shipped"))
	assert.False(t, CanTransition("archived", "pending"))
	assert.False(t, CanTransition("", ""))
}

func TestPublicViewWithholdsContactFields(t *testing.T) {
	email := "maria@example.com"
	order := Order{
		OrderReference: "BBK-20250314-ABCDE",
		CustomerName:   "Maria Santos",
		Location:       "Quezon City",
		Email:          &email,
		ContactNumber:  "09171234567",
		OrderSummary:   "Ube Cake (8\") × 1",
		Quantity:       1,
		Status:         StatusPending,
	}

	view := order.PublicView()
	assert.Equal(t, order.OrderReference, view.OrderReference)
	assert.Equal(t, order.CustomerName, view.CustomerName)
	assert.Equal(t, order.OrderSummary, view.OrderSummary)
	assert.Equal(t, order.Quantity, view.Quantity)
	assert.Equal(t, order.Status, view.Status)
}

func TestProductSizeEffectivePrice(t *testing.T) {
	discount := int64(45000)
	size := ProductSize{PriceCentavos: 55000, DiscountCentavos: &discount}
	assert.Equal(t, int64(45000), size.EffectiveCentavos())
	assert.True(t, size.IsOnSale())

	tooHigh := int64(60000)
	size = ProductSize{PriceCentavos: 55000, DiscountCentavos: &tooHigh}
	assert.Equal(t, int64(55000), size.EffectiveCentavos())
	assert.False(t, size.IsOnSale())

	size = ProductSize{PriceCentavos: 55000}
	assert.Equal(t, int64(55000), size.EffectiveCentavos())
}

func TestSettingsValidate(t *testing.T) {
	valid := DefaultSettings()
	assert.NoError(t, valid.Validate())

	s := valid
	s.MaxDailyOrders = 0
	assert.Error(t, s.Validate())

	s = valid
	s.OperatingHoursStart = -1
	assert.Error(t, s.Validate())

	s = valid
	s.OperatingHoursEnd = 24
	assert.Error(t, s.Validate())

	s = valid
	s.OperatingHoursStart = 21
	s.OperatingHoursEnd = 6
	assert.Error(t, s.Validate(), "wrap-around windows are rejected")

	s = valid
	s.OperatingHoursStart = 9
	s.OperatingHoursEnd = 9
	assert.Error(t, s.Validate(), "empty windows are rejected")
}

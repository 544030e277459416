package intake

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/admission"
	"backend/internal/cart"
	"backend/internal/models"
	"backend/internal/reference"
	"backend/internal/store"
)

type mockSettingsStore struct {
	settings models.Settings
	err      error
}

func (m *mockSettingsStore) Get(ctx context.Context) (models.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsStore) Patch(ctx context.Context, fields map[string]interface{}) (models.Settings, error) {
	return models.Settings{}, errors.New("not implemented")
}

type mockOrderStore struct {
	store.OrderStore
	pendingQty int
	sumErr     error
	insertFunc func(ctx context.Context, order *models.Order) error
	inserted   []models.Order
}

func (m *mockOrderStore) SumPendingQuantity(ctx context.Context, from, to time.Time) (int, error) {
	return m.pendingQty, m.sumErr
}

func (m *mockOrderStore) Insert(ctx context.Context, order *models.Order) error {
	if m.insertFunc != nil {
		if err := m.insertFunc(ctx, order); err != nil {
			return err
		}
	}
	order.ID = uint(len(m.inserted) + 1)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	m.inserted = append(m.inserted, *order)
	return nil
}

type recordingNotifier struct {
	customer int
	staff    int
}

func (n *recordingNotifier) NotifyCustomer(ctx context.Context, order models.Order) { n.customer++ }
func (n *recordingNotifier) NotifyStaff(ctx context.Context, order models.Order)    { n.staff++ }

type fixture struct {
	service  *Service
	orders   *mockOrderStore
	notifier *recordingNotifier
}

func newFixture(t *testing.T, orders *mockOrderStore, localHour int) fixture {
	t.Helper()

	settings := &mockSettingsStore{settings: models.Settings{
		ID:                  models.SettingsID,
		OrderFormEnabled:    true,
		MaxDailyOrders:      10,
		OperatingHoursStart: 6,
		OperatingHoursEnd:   21,
	}}

	zone := time.FixedZone("PHT", 8*3600)
	checker := admission.NewChecker(settings, orders, zone)
	checker.NowFunc = func() time.Time {
		return time.Date(2025, 3, 14, localHour, 15, 0, 0, zone)
	}

	codec, err := reference.NewCodec("BBK")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	return fixture{
		service:  NewService(orders, checker, codec, notifier, 50),
		orders:   orders,
		notifier: notifier,
	}
}

func validSubmission(t *testing.T, qty int) Submission {
	t.Helper()
	basket := cart.New()
	require.NoError(t, basket.AddItem(cart.Line{
		ProductID:    1,
		SizeID:       1,
		ProductName:  "Ube Cake",
		SizeName:     "8\"",
		UnitCentavos: 55000,
		Quantity:     qty,
	}))
	return Submission{
		Customer: Customer{
			Name:          "Maria Santos",
			Location:      "Quezon City",
			Email:         "maria@example.com",
			ContactNumber: "09171234567",
		},
		Cart:          basket,
		TermsAccepted: true,
	}
}

func TestSubmitCreatesPendingOrderWithReference(t *testing.T) {
	f := newFixture(t, &mockOrderStore{pendingQty: 0}, 10)

	order, err := f.service.Submit(context.Background(), validSubmission(t, 3))

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, int64(165000), order.TotalCentavos)
	assert.Equal(t, "Ube Cake (8\") × 3", order.OrderSummary)
	assert.Regexp(t, regexp.MustCompile(`^BBK-\d{8}-[A-Z2-9]{5}$`), order.OrderReference)
	assert.Len(t, f.orders.inserted, 1)
	assert.Equal(t, 1, f.notifier.customer)
	assert.Equal(t, 1, f.notifier.staff)
}

func TestSubmitDeniedWhenQuotaWouldNotAdmit(t *testing.T) {
	// Nine units already pending against a quota of ten: two more would
	// overshoot, so the authoritative check denies the submission.
	f := newFixture(t, &mockOrderStore{pendingQty: 9}, 10)

	_, err := f.service.Submit(context.Background(), validSubmission(t, 2))

	var denied AdmissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, admission.ReasonMaxOrdersReached, denied.Decision.Reason)
	assert.Empty(t, f.orders.inserted)
	assert.Zero(t, f.notifier.customer)
}

func TestSubmitFillingQuotaExactlyIsAccepted(t *testing.T) {
	f := newFixture(t, &mockOrderStore{pendingQty: 9}, 10)

	order, err := f.service.Submit(context.Background(), validSubmission(t, 1))

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestSubmitDeniedOutsideHoursRegardlessOfQuota(t *testing.T) {
	f := newFixture(t, &mockOrderStore{pendingQty: 0}, 22)

	_, err := f.service.Submit(context.Background(), validSubmission(t, 1))

	var denied AdmissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, admission.ReasonOutsideHours, denied.Decision.Reason)
	assert.Empty(t, f.orders.inserted)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{
			name:      "blank_name",
			mutate:    func(s *Submission) { s.Customer.Name = "  " },
			wantField: "name",
		},
		{
			name:      "blank_location",
			mutate:    func(s *Submission) { s.Customer.Location = "" },
			wantField: "location",
		},
		{
			name:      "blank_contact",
			mutate:    func(s *Submission) { s.Customer.ContactNumber = "" },
			wantField: "contactNumber",
		},
		{
			name:      "terms_not_accepted",
			mutate:    func(s *Submission) { s.TermsAccepted = false },
			wantField: "termsAccepted",
		},
		{
			name:      "empty_cart",
			mutate:    func(s *Submission) { s.Cart = cart.New() },
			wantField: "items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderStore{}
			f := newFixture(t, orders, 10)

			sub := validSubmission(t, 2)
			tt.mutate(&sub)

			_, err := f.service.Submit(context.Background(), sub)

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Empty(t, orders.inserted)
		})
	}
}

func TestSubmitRejectsOverPerOrderCeiling(t *testing.T) {
	f := newFixture(t, &mockOrderStore{}, 10)

	_, err := f.service.Submit(context.Background(), validSubmission(t, 51))

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
}

func TestSubmitSurfacesDependencyUnavailable(t *testing.T) {
	f := newFixture(t, &mockOrderStore{sumErr: errors.New("connection refused")}, 10)

	_, err := f.service.Submit(context.Background(), validSubmission(t, 1))

	assert.ErrorIs(t, err, admission.ErrDependencyUnavailable)
}

func TestSubmitRegeneratesReferenceOnCollision(t *testing.T) {
	collisions := 0
	orders := &mockOrderStore{
		insertFunc: func(ctx context.Context, order *models.Order) error {
			if collisions < 2 {
				collisions++
				return store.ErrDuplicateReference
			}
			return nil
		},
	}
	f := newFixture(t, orders, 10)

	order, err := f.service.Submit(context.Background(), validSubmission(t, 1))

	require.NoError(t, err)
	assert.Equal(t, 2, collisions)
	assert.NotEmpty(t, order.OrderReference)
}

func TestSubmitGivesUpAfterBoundedCollisionRetries(t *testing.T) {
	orders := &mockOrderStore{
		insertFunc: func(ctx context.Context, order *models.Order) error {
			return store.ErrDuplicateReference
		},
	}
	f := newFixture(t, orders, 10)

	_, err := f.service.Submit(context.Background(), validSubmission(t, 1))

	assert.ErrorIs(t, err, admission.ErrDependencyUnavailable)
	assert.Empty(t, orders.inserted)
}

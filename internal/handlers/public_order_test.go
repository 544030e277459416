package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/reference"
	"backend/internal/store"
)

type stubOrderStore struct {
	store.OrderStore
	findFunc         func(ctx context.Context, ref string) (models.Order, error)
	updateStatusFunc func(ctx context.Context, id uint, to models.OrderStatus, notes *string) (models.Order, error)
}

func (s *stubOrderStore) FindByReference(ctx context.Context, ref string) (models.Order, error) {
	return s.findFunc(ctx, ref)
}

func (s *stubOrderStore) UpdateStatus(ctx context.Context, id uint, to models.OrderStatus, notes *string) (models.Order, error) {
	return s.updateStatusFunc(ctx, id, to, notes)
}

func newTestCodec(t *testing.T) *reference.Codec {
	t.Helper()
	codec, err := reference.NewCodec("BBK")
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}
	return codec
}

func TestTrackOrderRejectsMalformedReferenceBeforeStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := &stubOrderStore{
		findFunc: func(ctx context.Context, ref string) (models.Order, error) {
			t.Fatal("store must not be queried for a malformed reference")
			return models.Order{}, nil
		},
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/orders/track/not-a-reference", nil)
	c.Params = gin.Params{{Key: "reference", Value: "not-a-reference"}}

	TrackOrder(orders, newTestCodec(t))(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestTrackOrderReturnsOnlyPublicFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	email := "maria@example.com"
	orders := &stubOrderStore{
		findFunc: func(ctx context.Context, ref string) (models.Order, error) {
			return models.Order{
				OrderReference: ref,
				CustomerName:   "Maria Santos",
				Location:       "Quezon City",
				Email:          &email,
				ContactNumber:  "09171234567",
				OrderSummary:   "Ube Cake (8\") × 1",
				Quantity:       1,
				Status:         models.StatusPending,
				CreatedAt:      time.Now(),
			}, nil
		},
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/orders/track/BBK-20250314-ABCDE", nil)
	c.Params = gin.Params{{Key: "reference", Value: "BBK-20250314-ABCDE"}}

	TrackOrder(orders, newTestCodec(t))(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, hidden := range []string{"Quezon City", "09171234567", "maria@example.com"} {
		if strings.Contains(body, hidden) {
			t.Fatalf("response leaked sensitive field %q: %s", hidden, body)
		}
	}
	if !strings.Contains(body, "BBK-20250314-ABCDE") {
		t.Fatalf("expected reference in response, got %s", body)
	}
}

func TestUpdateOrderStatusMapsIllegalTransitionTo409(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := &stubOrderStore{
		updateStatusFunc: func(ctx context.Context, id uint, to models.OrderStatus, notes *string) (models.Order, error) {
			return models.Order{}, models.IllegalTransitionError{From: models.StatusCancelled, To: to}
		},
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("PATCH", "/admin/api/orders/7/status",
		strings.NewReader(`{"status":"processing"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	UpdateOrderStatus(orders)(c)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not json: %v", err)
	}
	if payload["from"] != "cancelled" || payload["to"] != "processing" {
		t.Fatalf("expected offending pair in response, got %v", payload)
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := &stubOrderStore{
		updateStatusFunc: func(ctx context.Context, id uint, to models.OrderStatus, notes *string) (models.Order, error) {
			t.Fatal("store must not be reached for an unknown status")
			return models.Order{}, nil
		},
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("PATCH", "/admin/api/orders/7/status",
		strings.NewReader(`{"status":"shipped"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	UpdateOrderStatus(orders)(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

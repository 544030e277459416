package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"backend/internal/admission"
	"backend/internal/cart"
	"backend/internal/intake"
	"backend/internal/reference"
	"backend/internal/store"
)

/* =========================
   REQUEST DTOs
========================= */

type submitOrderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	SizeID    uint `json:"sizeId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type submitOrderCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location" binding:"required"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber" binding:"required"`
}

type submitOrderRequest struct {
	Customer        submitOrderCustomerRequest `json:"customer" binding:"required"`
	Items           []submitOrderItemRequest   `json:"items" binding:"required"`
	PaymentProofURL string                     `json:"paymentProofUrl"`
	TermsAccepted   bool                       `json:"termsAccepted"`
}

/* =========================
   AVAILABILITY (advisory)
========================= */

func GetAvailability(checker *admission.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := checker.Probe(c.Request.Context())
		payload := gin.H{
			"available": decision.Available,
			"current":   decision.Current,
			"max":       decision.Max,
			"hours":     gin.H{"start": decision.HoursStart, "end": decision.HoursEnd},
		}
		if !decision.Available {
			payload["reason"] = decision.Reason
			payload["message"] = decision.Message()
		}
		c.JSON(http.StatusOK, payload)
	}
}

/* =========================
   SUBMIT ORDER
========================= */

// SubmitOrder reprices every line from the catalog, aggregates the items into
// a cart and hands the result to the intake service. Client-sent prices are
// never trusted.
func SubmitOrder(service *intake.Service, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req submitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		basket := cart.New()
		for _, item := range req.Items {
			if item.Quantity < 1 {
				respondWithError(c, http.StatusBadRequest, route, "quantity must be greater than zero")
				return
			}

			product, size, err := products.GetSize(c.Request.Context(), item.ProductID, item.SizeID)
			if errors.Is(err, store.ErrProductNotFound) {
				respondWithError(c, http.StatusBadRequest, route, "unknown product or size")
				return
			}
			if err != nil {
				respondWithError(c, http.StatusServiceUnavailable, route, "catalog unavailable")
				return
			}

			line := cart.Line{
				ProductID:    product.ID,
				SizeID:       size.ID,
				ProductName:  product.Name,
				SizeName:     size.Name,
				UnitCentavos: size.PriceCentavos,
				Quantity:     item.Quantity,
			}
			if size.IsOnSale() {
				discounted := size.EffectiveCentavos()
				line.DiscountCentavos = &discounted
			}
			if err := basket.AddItem(line); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
		}

		order, err := service.Submit(c.Request.Context(), intake.Submission{
			Customer: intake.Customer{
				Name:          req.Customer.Name,
				Location:      req.Customer.Location,
				Email:         req.Customer.Email,
				ContactNumber: req.Customer.ContactNumber,
			},
			Cart:            basket,
			PaymentProofURL: req.PaymentProofURL,
			TermsAccepted:   req.TermsAccepted,
		})
		if err != nil {
			var verr intake.ValidationError
			if errors.As(err, &verr) {
				respondWithError(c, http.StatusBadRequest, route, verr.Error())
				return
			}
			var denied intake.AdmissionDeniedError
			if errors.As(err, &denied) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":   denied.Decision.Message(),
					"reason":  denied.Decision.Reason,
					"current": denied.Decision.Current,
					"max":     denied.Decision.Max,
				})
				return
			}
			if errors.Is(err, admission.ErrDependencyUnavailable) {
				respondWithError(c, http.StatusServiceUnavailable, route, "please try again in a moment")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "order could not be created")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderReference": order.OrderReference,
			"status":         order.Status,
			"quantity":       order.Quantity,
			"total":          cart.FormatPeso(order.TotalCentavos),
			"message":        "order created",
		})
	}
}

/* =========================
   TRACK ORDER
========================= */

// TrackOrder is the public lookup-by-reference endpoint. Malformed references
// are rejected before touching the store, and only non-sensitive fields are
// returned.
func TrackOrder(orders store.OrderStore, codec *reference.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/track"
		defer handlePanic(c, route)

		candidate := c.Param("reference")
		if !codec.Validate(candidate) {
			respondWithError(c, http.StatusBadRequest, route, "invalid order reference")
			return
		}

		order, err := orders.FindByReference(c.Request.Context(), reference.Normalize(candidate))
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			log.Error().Err(err).Str("route", route).Msg("tracking lookup failed")
			respondWithError(c, http.StatusServiceUnavailable, route, "please try again in a moment")
			return
		}

		c.JSON(http.StatusOK, order.PublicView())
	}
}

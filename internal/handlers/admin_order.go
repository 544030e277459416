package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListOrders returns a paginated admin view, newest first, optionally
// filtered by status.
func ListOrders(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := store.OrderFilter{Page: page, Limit: limit}
		if raw := c.Query("status"); raw != "" {
			status := models.OrderStatus(raw)
			if !status.IsValid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}
			filter.Status = &status
		}

		list, total, err := orders.List(c.Request.Context(), filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": list,
			"total":  total,
			"page":   page,
			"limit":  limit,
		})
	}
}

func GetOrder(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/:id"
		defer handlePanic(c, route)

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		order, err := orders.Get(c.Request.Context(), id)
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "order could not be fetched")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

type updateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// UpdateOrderStatus applies a lifecycle transition through the adjacency
// table. Illegal pairs come back as 409 with the offending pair spelled out.
func UpdateOrderStatus(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		to := models.OrderStatus(req.Status)
		if !to.IsValid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		order, err := orders.UpdateStatus(c.Request.Context(), id, to, req.Notes)
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		var illegal models.IllegalTransitionError
		if errors.As(err, &illegal) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": illegal.Error(),
				"from":  illegal.From,
				"to":    illegal.To,
			})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "status could not be updated")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateOrderNotes edits staff notes; allowed at any status, terminal ones
// included.
func UpdateOrderNotes(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/notes"
		defer handlePanic(c, route)

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req updateNotesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		order, err := orders.UpdateNotes(c.Request.Context(), id, req.Notes)
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "notes could not be updated")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrder is an administrative side operation, not part of the order
// lifecycle.
func DeleteOrder(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		err := orders.Delete(c.Request.Context(), id)
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "order could not be deleted")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

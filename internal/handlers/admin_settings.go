package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/store"
)

func GetSettings(settings store.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/settings"
		defer handlePanic(c, route)

		current, err := settings.Get(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "settings unavailable")
			return
		}
		c.JSON(http.StatusOK, current)
	}
}

type patchSettingsRequest struct {
	OrderFormEnabled    *bool `json:"orderFormEnabled"`
	MaxDailyOrders      *int  `json:"maxDailyOrders"`
	OperatingHoursStart *int  `json:"operatingHoursStart"`
	OperatingHoursEnd   *int  `json:"operatingHoursEnd"`
}

// PatchSettings partially updates the admission settings. Hour windows that
// are empty or wrap around midnight are rejected here, at write time.
func PatchSettings(settings store.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/settings"
		defer handlePanic(c, route)

		var req patchSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		fields := map[string]interface{}{}
		if req.OrderFormEnabled != nil {
			fields["order_form_enabled"] = *req.OrderFormEnabled
		}
		if req.MaxDailyOrders != nil {
			fields["max_daily_orders"] = *req.MaxDailyOrders
		}
		if req.OperatingHoursStart != nil {
			fields["operating_hours_start"] = *req.OperatingHoursStart
		}
		if req.OperatingHoursEnd != nil {
			fields["operating_hours_end"] = *req.OperatingHoursEnd
		}
		if len(fields) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		updated, err := settings.Patch(c.Request.Context(), fields)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

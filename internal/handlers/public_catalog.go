package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/cart"
	"backend/internal/models"
	"backend/internal/store"
)

type catalogSizeResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	PriceCentavos    int64  `json:"priceCentavos"`
	Price            string `json:"price"`
	DiscountCentavos *int64 `json:"discountCentavos,omitempty"`
	DiscountPrice    string `json:"discountPrice,omitempty"`
	IsOnSale         bool   `json:"isOnSale"`
}

type catalogProductResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	ImagePath   string                `json:"imagePath,omitempty"`
	Sizes       []catalogSizeResponse `json:"sizes"`
}

func toCatalogProduct(p models.Product) catalogProductResponse {
	sizes := make([]catalogSizeResponse, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		size := catalogSizeResponse{
			ID:            s.ID,
			Name:          s.Name,
			PriceCentavos: s.PriceCentavos,
			Price:         cart.FormatPeso(s.PriceCentavos),
			IsOnSale:      s.IsOnSale(),
		}
		if s.IsOnSale() {
			size.DiscountCentavos = s.DiscountCentavos
			size.DiscountPrice = cart.FormatPeso(*s.DiscountCentavos)
		}
		sizes = append(sizes, size)
	}
	return catalogProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImagePath:   p.ImagePath,
		Sizes:       sizes,
	}
}

// GetProducts lists the active catalog with display-ready peso prices.
func GetProducts(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		list, err := products.ListActive(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "catalog unavailable")
			return
		}

		out := make([]catalogProductResponse, 0, len(list))
		for _, p := range list {
			out = append(out, toCatalogProduct(p))
		}
		c.JSON(http.StatusOK, out)
	}
}

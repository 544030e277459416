package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
)

type productSizeInput struct {
	Name             string `json:"name" binding:"required"`
	PriceCentavos    int64  `json:"priceCentavos" binding:"required"`
	DiscountCentavos *int64 `json:"discountCentavos"`
	SortOrder        int    `json:"sortOrder"`
}

type productInput struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	ImagePath   string             `json:"imagePath"`
	IsActive    *bool              `json:"isActive"`
	Sizes       []productSizeInput `json:"sizes" binding:"required"`
}

func validateDiscount(price int64, discount *int64) error {
	if discount == nil {
		return nil
	}
	if *discount <= 0 {
		return fmt.Errorf("discountCentavos must be greater than 0")
	}
	if *discount >= price {
		return fmt.Errorf("discountCentavos must be less than priceCentavos")
	}
	return nil
}

func buildProductFromInput(input productInput) (models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Product{}, fmt.Errorf("name is required")
	}
	if len(input.Sizes) == 0 {
		return models.Product{}, fmt.Errorf("at least one size is required")
	}

	sizes := make([]models.ProductSize, 0, len(input.Sizes))
	for i, s := range input.Sizes {
		sizeName := strings.TrimSpace(s.Name)
		if sizeName == "" {
			return models.Product{}, fmt.Errorf("size %d: name is required", i+1)
		}
		if s.PriceCentavos <= 0 {
			return models.Product{}, fmt.Errorf("size %q: priceCentavos must be greater than 0", sizeName)
		}
		if err := validateDiscount(s.PriceCentavos, s.DiscountCentavos); err != nil {
			return models.Product{}, fmt.Errorf("size %q: %w", sizeName, err)
		}
		sizes = append(sizes, models.ProductSize{
			Name:             sizeName,
			PriceCentavos:    s.PriceCentavos,
			DiscountCentavos: s.DiscountCentavos,
			SortOrder:        s.SortOrder,
		})
	}

	product := models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ImagePath:   strings.TrimSpace(input.ImagePath),
		IsActive:    true,
		Sizes:       sizes,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return product, nil
}

func GetAllProducts(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		list, err := products.ListAll(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "products could not be fetched")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func CreateProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		product, err := buildProductFromInput(input)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if err := products.Create(c.Request.Context(), &product); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product could not be created")
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil || id == 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		existing, err := products.Get(c.Request.Context(), uint(id))
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product could not be fetched")
			return
		}

		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		product, err := buildProductFromInput(input)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		for i := range product.Sizes {
			product.Sizes[i].ProductID = existing.ID
		}

		if err := products.Update(c.Request.Context(), &product); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product could not be updated")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil || id == 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		err = products.Delete(c.Request.Context(), uint(id))
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product could not be deleted")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

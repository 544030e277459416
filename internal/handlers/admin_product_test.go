package handlers

import (
	"testing"
)

func discountOf(v int64) *int64 {
	return &v
}

func TestValidateDiscountRejectsNonPositive(t *testing.T) {
	if err := validateDiscount(55000, discountOf(0)); err == nil {
		t.Fatal("expected validation error for discount of 0")
	}
	if err := validateDiscount(55000, discountOf(-100)); err == nil {
		t.Fatal("expected validation error for negative discount")
	}
}

func TestValidateDiscountRejectsGreaterOrEqualPrice(t *testing.T) {
	for _, discount := range []int64{55000, 60000} {
		if err := validateDiscount(55000, discountOf(discount)); err == nil {
			t.Fatalf("expected validation error for discount=%d", discount)
		}
	}
}

func TestValidateDiscountAcceptsNilAndLower(t *testing.T) {
	if err := validateDiscount(55000, nil); err != nil {
		t.Fatalf("nil discount should be valid, got %v", err)
	}
	if err := validateDiscount(55000, discountOf(45000)); err != nil {
		t.Fatalf("lower discount should be valid, got %v", err)
	}
}

func TestBuildProductFromInputRequiresSizes(t *testing.T) {
	_, err := buildProductFromInput(productInput{Name: "Ube Cake"})
	if err == nil {
		t.Fatal("expected error for product without sizes")
	}
}

func TestBuildProductFromInputDefaultsToActive(t *testing.T) {
	product, err := buildProductFromInput(productInput{
		Name: "Ube Cake",
		Sizes: []productSizeInput{
			{Name: "8\"", PriceCentavos: 55000},
		},
	})
	if err != nil {
		t.Fatalf("buildProductFromInput returned error: %v", err)
	}
	if !product.IsActive {
		t.Fatal("expected new product to default to active")
	}
	if len(product.Sizes) != 1 || product.Sizes[0].PriceCentavos != 55000 {
		t.Fatalf("unexpected sizes: %+v", product.Sizes)
	}
}

func TestBuildProductFromInputPropagatesSizeErrors(t *testing.T) {
	_, err := buildProductFromInput(productInput{
		Name: "Ube Cake",
		Sizes: []productSizeInput{
			{Name: "8\"", PriceCentavos: 55000, DiscountCentavos: discountOf(60000)},
		},
	})
	if err == nil {
		t.Fatal("expected error for discount above price")
	}
}

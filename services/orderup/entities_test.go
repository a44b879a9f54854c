package main

import (
	"errors"
	"testing"
	"time"
)

func TestNewProduct(t *testing.T) {
	// Arrange
	name := "Widget"
	stock := 10

	// Act
	product := NewProduct(name, stock)

	// Assert
	if product.ID == "" {
		t.Error("Expected ID to be assigned")
	}
	if product.Name != name {
		t.Errorf("Expected Name %s, got %s", name, product.Name)
	}
	if product.Stock != stock {
		t.Errorf("Expected Stock %d, got %d", stock, product.Stock)
	}
	if product.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	if product.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	now := time.Now()
	if product.CreatedAt.After(now) || product.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestNewOrder(t *testing.T) {
	// Arrange
	customerName := "Alice"
	quantity := 3
	productID := "product-789"

	// Act
	order := NewOrder(customerName, quantity, productID)

	// Assert
	if order.ID == "" {
		t.Error("Expected ID to be assigned")
	}
	if order.CustomerName != customerName {
		t.Errorf("Expected CustomerName %s, got %s", customerName, order.CustomerName)
	}
	if order.Quantity != quantity {
		t.Errorf("Expected Quantity %d, got %d", quantity, order.Quantity)
	}
	if order.ProductID != productID {
		t.Errorf("Expected ProductID %s, got %s", productID, order.ProductID)
	}
	if order.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestNewOrderAssignsUniqueIDs(t *testing.T) {
	a := NewOrder("Alice", 1, "product-789")
	b := NewOrder("Bob", 1, "product-789")

	if a.ID == b.ID {
		t.Errorf("Expected distinct order IDs, got %s twice", a.ID)
	}
}

func TestOrderProcessingErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := &OrderProcessingError{Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the original cause")
	}

	var procErr *OrderProcessingError
	if !errors.As(error(err), &procErr) {
		t.Error("Expected errors.As to match *OrderProcessingError")
	}

	if err.Error() != "failed to process order: connection reset" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestBusinessErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrProductNotFound, ErrInsufficientStock) {
		t.Error("ErrProductNotFound and ErrInsufficientStock must be distinct")
	}
	if errors.Is(ErrOrderNotFound, ErrProductNotFound) {
		t.Error("ErrOrderNotFound and ErrProductNotFound must be distinct")
	}
}

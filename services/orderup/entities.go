package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Erros de negócio esperados pelo fluxo de pedidos
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
)

// OrderProcessingError embrulha qualquer falha inesperada dentro da transação
// de pedido (erro de storage, lock timeout). A causa original é preservada.
type OrderProcessingError struct {
	Cause error
}

func (e *OrderProcessingError) Error() string {
	return fmt.Sprintf("failed to process order: %v", e.Cause)
}

func (e *OrderProcessingError) Unwrap() error {
	return e.Cause
}

// Product representa um produto com seu estoque atual
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name string, stock int) *Product {
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Stock:     stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Order representa um pedido de um único produto
type Order struct {
	ID           string    `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Quantity     int       `json:"quantity" db:"quantity"`
	ProductID    string    `json:"product_id" db:"product_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewOrder cria uma nova instância de Order
func NewOrder(customerName string, quantity int, productID string) *Order {
	return &Order{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		Quantity:     quantity,
		ProductID:    productID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// OrderConfirmation projeta um pedido junto com os dados do produto associado.
// É o retorno de PlaceOrder e também das leituras de pedido.
type OrderConfirmation struct {
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Message     string `json:"message"`
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderUseCaseInterface define a interface para o use case de pedidos
type OrderUseCaseInterface interface {
	PlaceOrder(ctx context.Context, productID, customerName string, quantity int) (*OrderConfirmation, error)
	GetOrderByID(ctx context.Context, orderID string) (*OrderConfirmation, error)
	GetAllOrders(ctx context.Context) ([]*OrderConfirmation, error)
	GetProductStock(ctx context.Context, productID string) (int, error)
}

// ProductUseCaseInterface define a interface para o use case de produtos
type ProductUseCaseInterface interface {
	CreateProduct(ctx context.Context, name string, stock int) (*Product, error)
	GetProductByID(ctx context.Context, productID string) (*Product, error)
	GetAllProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, productID, name string, stock int) (*Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// PlaceOrderRequest representa a requisição para colocar um pedido
type PlaceOrderRequest struct {
	ProductID    string `json:"product_id" binding:"required"`
	CustomerName string `json:"customer_name" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
}

// ProductRequest representa a requisição para criar ou atualizar um produto
type ProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Stock int    `json:"stock" binding:"gte=0"`
}

// ProductResponse representa a resposta de operações de produto
type ProductResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Stock   int    `json:"stock"`
	Message string `json:"message"`
}

// ErrorResponse representa o corpo de erro retornado pela API
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// writeError traduz os erros de negócio para status HTTP
func writeError(c *gin.Context, err error) {
	var procErr *OrderProcessingError
	switch {
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "Product Not Found",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "Order Not Found",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Insufficient Stock",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
	case errors.As(err, &procErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Order Processing Error",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

// OrderHandler contém os handlers HTTP de pedidos
type OrderHandler struct {
	useCase OrderUseCaseInterface
}

// NewOrderHandler cria uma nova instância de OrderHandler
func NewOrderHandler(useCase OrderUseCaseInterface) *OrderHandler {
	return &OrderHandler{
		useCase: useCase,
	}
}

// PlaceOrder coloca um novo pedido
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid Request",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
		return
	}

	span := trace.SpanFromContext(c.Request.Context())
	span.SetAttributes(
		attribute.String("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	confirmation, err := h.useCase.PlaceOrder(c.Request.Context(), req.ProductID, req.CustomerName, req.Quantity)
	if err != nil {
		span.RecordError(err)
		writeError(c, err)
		return
	}

	span.SetAttributes(attribute.String("order_id", confirmation.OrderID))
	c.JSON(http.StatusCreated, confirmation)
}

// GetOrderByID busca um pedido pelo ID
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	confirmation, err := h.useCase.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// GetAllOrders lista todos os pedidos
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	confirmations, err := h.useCase.GetAllOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmations)
}

// GetProductStock retorna o estoque atual de um produto
func (h *OrderHandler) GetProductStock(c *gin.Context) {
	stock, err := h.useCase.GetProductStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// HealthCheck verifica a saúde do serviço
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "orderup",
	})
}

// ProductHandler contém os handlers HTTP de produtos
type ProductHandler struct {
	useCase ProductUseCaseInterface
}

// NewProductHandler cria uma nova instância de ProductHandler
func NewProductHandler(useCase ProductUseCaseInterface) *ProductHandler {
	return &ProductHandler{
		useCase: useCase,
	}
}

// CreateProduct cria um novo produto
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid Request",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), req.Name, req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ProductResponse{
		ID:      product.ID,
		Name:    product.Name,
		Stock:   product.Stock,
		Message: "Product created successfully",
	})
}

// GetProductByID busca um produto pelo ID
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.useCase.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductResponse{
		ID:      product.ID,
		Name:    product.Name,
		Stock:   product.Stock,
		Message: "Product retrieved successfully",
	})
}

// GetAllProducts lista todos os produtos
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.useCase.GetAllProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, ProductResponse{
			ID:      product.ID,
			Name:    product.Name,
			Stock:   product.Stock,
			Message: "Product retrieved successfully",
		})
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateProduct atualiza nome e estoque de um produto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid Request",
			Message:   err.Error(),
			Timestamp: time.Now().UnixMilli(),
		})
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), c.Param("id"), req.Name, req.Stock)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductResponse{
		ID:      product.ID,
		Name:    product.Name,
		Stock:   product.Stock,
		Message: "Product updated successfully",
	})
}

// DeleteProduct remove um produto
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.useCase.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

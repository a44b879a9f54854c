package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderUseCase simula o use case de pedidos
type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) PlaceOrder(ctx context.Context, productID, customerName string, quantity int) (*OrderConfirmation, error) {
	args := m.Called(ctx, productID, customerName, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderConfirmation), args.Error(1)
}

func (m *MockOrderUseCase) GetOrderByID(ctx context.Context, orderID string) (*OrderConfirmation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderConfirmation), args.Error(1)
}

func (m *MockOrderUseCase) GetAllOrders(ctx context.Context) ([]*OrderConfirmation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OrderConfirmation), args.Error(1)
}

func (m *MockOrderUseCase) GetProductStock(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

// MockProductUseCase simula o use case de produtos
type MockProductUseCase struct {
	mock.Mock
}

func (m *MockProductUseCase) CreateProduct(ctx context.Context, name string, stock int) (*Product, error) {
	args := m.Called(ctx, name, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockProductUseCase) GetProductByID(ctx context.Context, productID string) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockProductUseCase) GetAllProducts(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockProductUseCase) UpdateProduct(ctx context.Context, productID, name string, stock int) (*Product, error) {
	args := m.Called(ctx, productID, name, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockProductUseCase) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func setupRouter(orderUC OrderUseCaseInterface, productUC ProductUseCaseInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	orderHandler := NewOrderHandler(orderUC)
	productHandler := NewProductHandler(productUC)

	r.GET("/health", orderHandler.HealthCheck)
	r.POST("/api/orders", orderHandler.PlaceOrder)
	r.GET("/api/orders/:id", orderHandler.GetOrderByID)
	r.GET("/api/orders", orderHandler.GetAllOrders)
	r.POST("/api/products", productHandler.CreateProduct)
	r.GET("/api/products/:id", productHandler.GetProductByID)
	r.GET("/api/products", productHandler.GetAllProducts)
	r.PUT("/api/products/:id", productHandler.UpdateProduct)
	r.DELETE("/api/products/:id", productHandler.DeleteProduct)
	r.GET("/api/products/:id/stock", orderHandler.GetProductStock)

	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderHandlerSuccess(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	confirmation := &OrderConfirmation{
		OrderID:     "order-1",
		ProductID:   "product-1",
		ProductName: "Widget",
		Quantity:    2,
		Message:     "Order placed successfully",
	}
	orderUC.On("PlaceOrder", mock.Anything, "product-1", "Alice", 2).Return(confirmation, nil)

	w := performJSON(r, http.MethodPost, "/api/orders", PlaceOrderRequest{
		ProductID:    "product-1",
		CustomerName: "Alice",
		Quantity:     2,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var got OrderConfirmation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *confirmation, got)
	orderUC.AssertExpectations(t)
}

func TestPlaceOrderHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "product not found maps to 404",
			err:        ErrProductNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Product Not Found",
		},
		{
			name:       "insufficient stock maps to 400",
			err:        ErrInsufficientStock,
			wantStatus: http.StatusBadRequest,
			wantError:  "Insufficient Stock",
		},
		{
			name:       "processing failure maps to 500",
			err:        &OrderProcessingError{Cause: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Order Processing Error",
		},
		{
			name:       "unknown failure maps to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderUC := new(MockOrderUseCase)
			productUC := new(MockProductUseCase)
			r := setupRouter(orderUC, productUC)

			orderUC.On("PlaceOrder", mock.Anything, "product-1", "Alice", 2).Return(nil, tt.err)

			w := performJSON(r, http.MethodPost, "/api/orders", PlaceOrderRequest{
				ProductID:    "product-1",
				CustomerName: "Alice",
				Quantity:     2,
			})

			assert.Equal(t, tt.wantStatus, w.Code)

			var body ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.NotEmpty(t, body.Message)
			assert.NotZero(t, body.Timestamp)
		})
	}
}

func TestPlaceOrderHandlerRejectsInvalidBody(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	// quantity <= 0 nunca chega no use case
	w := performJSON(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_id":    "product-1",
		"customer_name": "Alice",
		"quantity":      0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orderUC.AssertNotCalled(t, "PlaceOrder")
}

func TestGetOrderByIDHandler(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	orderUC.On("GetOrderByID", mock.Anything, "order-1").Return(&OrderConfirmation{
		OrderID:     "order-1",
		ProductID:   "product-1",
		ProductName: "Widget",
		Quantity:    1,
		Message:     "Order retrieved successfully",
	}, nil)

	w := performJSON(r, http.MethodGet, "/api/orders/order-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetOrderByIDHandlerNotFound(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	orderUC.On("GetOrderByID", mock.Anything, "missing").Return(nil, ErrOrderNotFound)

	w := performJSON(r, http.MethodGet, "/api/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Order Not Found", body.Error)
}

func TestGetProductStockHandler(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	orderUC.On("GetProductStock", mock.Anything, "product-1").Return(7, nil)

	w := performJSON(r, http.MethodGet, "/api/products/product-1/stock", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())
}

func TestCreateProductHandler(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	product := NewProduct("Widget", 10)
	productUC.On("CreateProduct", mock.Anything, "Widget", 10).Return(product, nil)

	w := performJSON(r, http.MethodPost, "/api/products", ProductRequest{Name: "Widget", Stock: 10})
	assert.Equal(t, http.StatusCreated, w.Code)

	var body ProductResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, product.ID, body.ID)
	assert.Equal(t, "Product created successfully", body.Message)
}

func TestCreateProductHandlerAllowsZeroStock(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	product := NewProduct("Empty", 0)
	productUC.On("CreateProduct", mock.Anything, "Empty", 0).Return(product, nil)

	w := performJSON(r, http.MethodPost, "/api/products", ProductRequest{Name: "Empty", Stock: 0})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProductHandlerRejectsMissingName(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	w := performJSON(r, http.MethodPost, "/api/products", map[string]interface{}{"stock": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	productUC.AssertNotCalled(t, "CreateProduct")
}

func TestDeleteProductHandler(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	productUC.On("DeleteProduct", mock.Anything, "product-1").Return(nil)

	w := performJSON(r, http.MethodDelete, "/api/products/product-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteProductHandlerNotFound(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	productUC.On("DeleteProduct", mock.Anything, "missing").Return(ErrProductNotFound)

	w := performJSON(r, http.MethodDelete, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheckHandler(t *testing.T) {
	orderUC := new(MockOrderUseCase)
	productUC := new(MockProductUseCase)
	r := setupRouter(orderUC, productUC)

	w := performJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

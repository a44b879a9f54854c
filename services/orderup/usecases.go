package main

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// OrderUseCase contém a lógica de negócio dos pedidos
type OrderUseCase struct {
	repository Repository
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(repository Repository) *OrderUseCase {
	return &OrderUseCase{
		repository: repository,
	}
}

// PlaceOrder executa o protocolo de reserva de estoque como uma unidade
// atômica: lock pessimista na linha do produto, validação do estoque,
// débito e persistência do pedido. Ou tudo commita junto, ou nada persiste.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, productID, customerName string, quantity int) (*OrderConfirmation, error) {
	// 1. Inicia a transação
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, &OrderProcessingError{Cause: fmt.Errorf("starting transaction: %w", err)}
	}
	defer tx.Rollback()

	// 2. Obtém o produto com LOCK PESSIMISTA (SELECT FOR UPDATE)
	// Isso bloqueia a linha no banco até o Commit ou Rollback
	product, err := uc.repository.GetProductForUpdate(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			log.Printf("❌ [PLACE ORDER] Product not found | ProductID=%s", productID)
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, &OrderProcessingError{Cause: err}
	}

	// 3. Regra de Negócio: verifica estoque sob lock. Nenhuma outra transação
	// consegue ler-para-escrita ou debitar essa linha entre o check e o update.
	if quantity > product.Stock {
		log.Printf("❌ [PLACE ORDER] Insufficient stock | ProductID=%s Stock=%d Requested=%d",
			productID, product.Stock, quantity)
		return nil, fmt.Errorf("%w for product %s", ErrInsufficientStock, product.Name)
	}

	// 4. Debita o estoque
	if err := uc.repository.DecreaseStock(ctx, tx, productID, quantity); err != nil {
		log.Printf("❌ [PLACE ORDER] Failed to decrease stock | ProductID=%s | Error=%v", productID, err)
		return nil, &OrderProcessingError{Cause: err}
	}

	// 5. Persiste o pedido referenciando o produto
	order := NewOrder(customerName, quantity, productID)
	if err := uc.repository.CreateOrder(ctx, tx, order); err != nil {
		log.Printf("❌ [PLACE ORDER] Failed to create order | ProductID=%s | Error=%v", productID, err)
		return nil, &OrderProcessingError{Cause: err}
	}

	// 6. Commit da transação libera o lock
	if err := tx.Commit(); err != nil {
		return nil, &OrderProcessingError{Cause: fmt.Errorf("committing order transaction: %w", err)}
	}

	log.Printf("✅ [PLACE ORDER] Success: OrderID=%s ProductID=%s Quantity=%d", order.ID, productID, quantity)

	return &OrderConfirmation{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    order.Quantity,
		Message:     "Order placed successfully",
	}, nil
}

// GetOrderByID busca um pedido e o projeta com os dados do produto
func (uc *OrderUseCase) GetOrderByID(ctx context.Context, orderID string) (*OrderConfirmation, error) {
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	product, err := uc.repository.GetProduct(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("loading product for order %s: %w", orderID, err)
	}

	return &OrderConfirmation{
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    order.Quantity,
		Message:     "Order retrieved successfully",
	}, nil
}

// GetAllOrders projeta todos os pedidos armazenados
func (uc *OrderUseCase) GetAllOrders(ctx context.Context) ([]*OrderConfirmation, error) {
	orders, err := uc.repository.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	confirmations := make([]*OrderConfirmation, 0, len(orders))
	for _, order := range orders {
		product, err := uc.repository.GetProduct(ctx, order.ProductID)
		if err != nil {
			return nil, fmt.Errorf("loading product for order %s: %w", order.ID, err)
		}
		confirmations = append(confirmations, &OrderConfirmation{
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    order.Quantity,
			Message:     "Order retrieved successfully",
		})
	}
	return confirmations, nil
}

// GetProductStock retorna o estoque atual de um produto
func (uc *OrderUseCase) GetProductStock(ctx context.Context, productID string) (int, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return 0, err
	}
	return product.Stock, nil
}

// ProductUseCase contém a lógica de negócio dos produtos
type ProductUseCase struct {
	repository Repository
}

// NewProductUseCase cria uma nova instância de ProductUseCase
func NewProductUseCase(repository Repository) *ProductUseCase {
	return &ProductUseCase{
		repository: repository,
	}
}

// CreateProduct cria um novo produto
func (uc *ProductUseCase) CreateProduct(ctx context.Context, name string, stock int) (*Product, error) {
	product := NewProduct(name, stock)
	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Printf("✅ [CREATE PRODUCT] ProductID=%s Name=%s Stock=%d", product.ID, product.Name, product.Stock)
	return product, nil
}

// GetProductByID busca um produto pelo ID
func (uc *ProductUseCase) GetProductByID(ctx context.Context, productID string) (*Product, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}
	return product, nil
}

// GetAllProducts lista todos os produtos
func (uc *ProductUseCase) GetAllProducts(ctx context.Context) ([]*Product, error) {
	return uc.repository.ListProducts(ctx)
}

// UpdateProduct corrige nome e estoque de um produto existente. Essa operação
// é independente do protocolo de reserva e não participa do lock de pedido.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, productID, name string, stock int) (*Product, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}

	product.Name = name
	product.Stock = stock
	if err := uc.repository.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Printf("✅ [UPDATE PRODUCT] ProductID=%s Name=%s Stock=%d", product.ID, product.Name, product.Stock)
	return product, nil
}

// DeleteProduct remove um produto
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, productID string) error {
	err := uc.repository.DeleteProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return err
	}

	log.Printf("✅ [DELETE PRODUCT] ProductID=%s", productID)
	return nil
}

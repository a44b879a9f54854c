package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository define a interface para operações de banco de dados de produtos e pedidos
type Repository interface {
	// BeginTx inicia uma nova unidade de trabalho
	BeginTx(ctx context.Context) (Tx, error)

	GetProduct(ctx context.Context, productID string) (*Product, error)
	// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE).
	// Só pode ser chamado dentro de uma transação ativa.
	GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*Product, error)
	// DecreaseStock debita `quantity` unidades do estoque dentro da transação
	DecreaseStock(ctx context.Context, tx Tx, productID string, quantity int) error
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, productID string) error
	ListProducts(ctx context.Context) ([]*Product, error)

	// CreateOrder persiste um novo pedido dentro da transação
	CreateOrder(ctx context.Context, tx Tx, order *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
}

// Tx interface para transações
type Tx interface {
	Commit() error
	Rollback() error
}

// PostgresTx implementa a interface Tx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit() error {
	return t.tx.Commit(context.Background())
}

func (t *PostgresTx) Rollback() error {
	return t.tx.Rollback(context.Background())
}

// PostgresRepository implementa Repository usando PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository cria uma nova instância de PostgresRepository
func NewPostgresRepository(db *pgxpool.Pool) Repository {
	return &PostgresRepository{
		db: db,
	}
}

// BeginTx inicia uma nova transação
func (r *PostgresRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PostgresTx{tx: tx}, nil
}

// GetProduct busca um produto pelo ID (leitura simples, sem lock)
func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, stock, created_at, updated_at
		FROM products WHERE id = $1
	`, productID).Scan(&product.ID, &product.Name, &product.Stock, &product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductForUpdate obtém o produto com lock pessimista (SELECT FOR UPDATE).
// A linha fica bloqueada até o Commit ou Rollback da transação. Se a linha não
// existe nada é bloqueado e ErrProductNotFound é retornado direto.
func (r *PostgresRepository) GetProductForUpdate(ctx context.Context, tx Tx, productID string) (*Product, error) {
	pgTx := tx.(*PostgresTx).tx

	query := `
		SELECT id, name, stock, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var product Product
	err := pgTx.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product with lock: %w", err)
	}

	return &product, nil
}

// DecreaseStock debita o estoque do produto dentro da transação. O chamador já
// validou o estoque sob lock, então o decremento aqui nunca fica negativo.
func (r *PostgresRepository) DecreaseStock(ctx context.Context, tx Tx, productID string, quantity int) error {
	pgTx := tx.(*PostgresTx).tx

	updateQuery := `
		UPDATE products
		SET stock = stock - $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := pgTx.Exec(ctx, updateQuery, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrease stock: %w", err)
	}

	return nil
}

// CreateProduct cria um novo produto no banco de dados
func (r *PostgresRepository) CreateProduct(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, product.ID, product.Name, product.Stock, product.CreatedAt, product.UpdatedAt)
	return err
}

// UpdateProduct atualiza nome e estoque de um produto existente
func (r *PostgresRepository) UpdateProduct(ctx context.Context, product *Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, stock = $3, updated_at = NOW()
		WHERE id = $1
	`, product.ID, product.Name, product.Stock)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct remove um produto (e seus pedidos, via ON DELETE CASCADE)
func (r *PostgresRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListProducts lista todos os produtos
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, stock, created_at, updated_at
		FROM products ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}

// CreateOrder cria um novo pedido dentro da transação
func (r *PostgresRepository) CreateOrder(ctx context.Context, tx Tx, order *Order) error {
	pgTx := tx.(*PostgresTx).tx

	_, err := pgTx.Exec(ctx, `
		INSERT INTO orders (id, customer_name, quantity, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.CustomerName, order.Quantity, order.ProductID, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrder busca um pedido pelo ID
func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_name, quantity, product_id, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.CustomerName, &order.Quantity, &order.ProductID, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders lista todos os pedidos na ordem de criação
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, quantity, product_id, created_at, updated_at
		FROM orders ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var order Order
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.Quantity, &order.ProductID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

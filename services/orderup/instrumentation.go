package main

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedOrderUseCase decora o use case de pedidos com logging de tempo,
// spans e métricas. A instrumentação fica fora do protocolo atômico: o use
// case interno nunca sabe que está sendo medido.
type InstrumentedOrderUseCase struct {
	next          OrderUseCaseInterface
	tracer        trace.Tracer
	ordersPlaced  metric.Int64Counter
	placeDuration metric.Float64Histogram
}

// NewInstrumentedOrderUseCase cria uma nova instância de InstrumentedOrderUseCase
func NewInstrumentedOrderUseCase(next OrderUseCaseInterface) *InstrumentedOrderUseCase {
	meter := otel.Meter("orderup")

	ordersPlaced, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Number of placeOrder calls by outcome"))
	if err != nil {
		log.Printf("Failed to create orders.placed counter: %v", err)
	}

	placeDuration, err := meter.Float64Histogram("orders.place.duration",
		metric.WithDescription("placeOrder duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		log.Printf("Failed to create orders.place.duration histogram: %v", err)
	}

	return &InstrumentedOrderUseCase{
		next:          next,
		tracer:        otel.Tracer("orderup"),
		ordersPlaced:  ordersPlaced,
		placeDuration: placeDuration,
	}
}

// PlaceOrder mede e loga a colocação do pedido ao redor do protocolo
func (i *InstrumentedOrderUseCase) PlaceOrder(ctx context.Context, productID, customerName string, quantity int) (*OrderConfirmation, error) {
	ctx, span := i.tracer.Start(ctx, "place_order")
	defer span.End()

	span.SetAttributes(
		attribute.String("product_id", productID),
		attribute.Int("quantity", quantity),
	)

	log.Printf("➡️ [ORDER] Processing started | ProductID=%s Quantity=%d", productID, quantity)
	start := time.Now()

	confirmation, err := i.next.PlaceOrder(ctx, productID, customerName, quantity)

	duration := time.Since(start)
	outcome := "success"
	if err != nil {
		outcome = "failure"
		span.RecordError(err)
		log.Printf("❌ [ORDER] Processing failed after %d ms | Error=%v", duration.Milliseconds(), err)
	} else {
		span.SetAttributes(attribute.String("order_id", confirmation.OrderID))
		log.Printf("✅ [ORDER] Processing finished in %d ms | OrderID=%s", duration.Milliseconds(), confirmation.OrderID)
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if i.ordersPlaced != nil {
		i.ordersPlaced.Add(ctx, 1, attrs)
	}
	if i.placeDuration != nil {
		i.placeDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}

	return confirmation, err
}

// GetOrderByID repassa a leitura sem instrumentação extra
func (i *InstrumentedOrderUseCase) GetOrderByID(ctx context.Context, orderID string) (*OrderConfirmation, error) {
	return i.next.GetOrderByID(ctx, orderID)
}

// GetAllOrders repassa a leitura sem instrumentação extra
func (i *InstrumentedOrderUseCase) GetAllOrders(ctx context.Context) ([]*OrderConfirmation, error) {
	return i.next.GetAllOrders(ctx)
}

// GetProductStock repassa a leitura sem instrumentação extra
func (i *InstrumentedOrderUseCase) GetProductStock(ctx context.Context, productID string) (int, error) {
	return i.next.GetProductStock(ctx, productID)
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Driver de carga para o serviço orderup: cria um produto com estoque S e
// dispara K pedidos concorrentes de 1 unidade contra ele. Com a reserva de
// estoque correta, exatamente min(K, S) pedidos devem ser aceitos e o estoque
// final deve ser S - min(K, S).

type productResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func main() {
	baseURL := getEnv("ORDERUP_URL", "http://localhost:8080")
	stock := getEnvInt("PRODUCT_STOCK", 10)
	concurrency := getEnvInt("CONCURRENCY", 20)

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)

	var product productResponse
	resp, err := client.R().
		SetBody(map[string]interface{}{
			"name":  fmt.Sprintf("loadgen-product-%d", time.Now().Unix()),
			"stock": stock,
		}).
		SetResult(&product).
		Post("/api/products")
	if err != nil {
		log.Fatalf("Failed to create product: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		log.Fatalf("Failed to create product: status %d body %s", resp.StatusCode(), resp.String())
	}

	log.Printf("🚀 Firing %d concurrent one-unit orders at product %s (stock=%d)", concurrency, product.ID, stock)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	rejected := 0
	failed := 0

	start := time.Now()
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			resp, err := client.R().
				SetBody(map[string]interface{}{
					"product_id":    product.ID,
					"customer_name": fmt.Sprintf("loadgen-worker-%d", worker),
					"quantity":      1,
				}).
				Post("/api/orders")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				failed++
			case resp.StatusCode() == http.StatusCreated:
				accepted++
			case resp.StatusCode() == http.StatusBadRequest:
				rejected++
			default:
				failed++
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	var finalStock int
	resp, err = client.R().
		SetResult(&finalStock).
		Get("/api/products/" + product.ID + "/stock")
	if err != nil {
		log.Fatalf("Failed to read final stock: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Fatalf("Failed to read final stock: status %d body %s", resp.StatusCode(), resp.String())
	}

	expected := stock
	if concurrency < stock {
		expected = concurrency
	}

	log.Printf("📊 Results after %s:", elapsed)
	log.Printf("   accepted=%d rejected=%d failed=%d final_stock=%d", accepted, rejected, failed, finalStock)

	if accepted != expected || finalStock != stock-expected {
		log.Fatalf("❌ Oversell check FAILED: expected %d accepted and final stock %d", expected, stock-expected)
	}
	log.Printf("✅ Oversell check passed: exactly %d orders accepted, stock drained to %d", expected, finalStock)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}

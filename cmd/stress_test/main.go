package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/adapter/storage"
	"github.com/rl1809/fitgear/internal/core/domain"
	"github.com/rl1809/fitgear/internal/core/service"
)

const (
	productID     = 3
	totalRequests = 50
	cartTTL       = time.Hour
	keyPrefix     = "fitgear_stress:"
)

// Fires concurrent AddLine calls at one shopper's cart and checks that no
// increment was lost.
func main() {
	ctx := context.Background()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr, PoolSize: totalRequests})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	catalog, err := domain.NewCatalog(domain.DefaultProducts())
	if err != nil {
		log.Fatalf("invalid catalog: %v", err)
	}

	shopperID := uuid.NewString()
	defer rdb.Del(ctx, keyPrefix+shopperID)

	carts := service.NewCartService(storage.NewRedisAdapter(rdb, cartTTL), catalog, zap.NewNop(), keyPrefix)

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, _, err := carts.AddLine(ctx, shopperID, productID); err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
				log.Printf("add line failed: %v", err)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	cart, err := carts.Cart(ctx, shopperID)
	if err != nil {
		log.Fatalf("failed to read cart: %v", err)
	}
	line, _ := cart.Line(productID)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Final Quantity:   %d\n", line.Quantity)
	fmt.Printf("Cart Total:       $%s\n", cart.TotalValue().StringFixed(2))
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if int32(line.Quantity) == success {
		fmt.Printf("PASS: quantity matches %d successful adds\n", success)
	} else {
		fmt.Printf("FAIL: expected quantity %d, got %d\n", success, line.Quantity)
		os.Exit(1)
	}
}

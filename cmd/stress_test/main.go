package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/quickbites/storefront/internal/adapter/messaging"
	"github.com/quickbites/storefront/internal/adapter/notify"
	"github.com/quickbites/storefront/internal/adapter/realtime"
	"github.com/quickbites/storefront/internal/adapter/storage"
	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/core/service"
)

const (
	mysqlDSN      = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	redisAddr     = "localhost:6379"
	natsURL       = "nats://localhost:4222"
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	nc, err := realtime.Connect(natsURL)
	if err != nil {
		log.Fatalf("failed to connect nats: %v", err)
	}
	defer nc.Close()

	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)
	notifier := notify.NewPushNotifier(nc, rdb)
	haptics := notify.NewClientHaptics(nc)
	chat := messaging.NewWhatsAppHandoff(nc, "919876543210")

	effects := service.NewEffectRunner()
	checkout := service.NewCheckoutService(mysqlAdapter, redisAdapter, notifier, haptics, chat, effects)

	item := domain.MenuItem{ID: "stress-item", Name: "Stress Burger", Price: 100}
	db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, price) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE price = VALUES(price)`, item.ID, item.Name, item.Price)
	db.ExecContext(ctx, `DELETE FROM order_items WHERE item_id = ?`, item.ID)

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()

			cart := domain.NewCart()
			cart.Add(item)
			cart.Add(item)

			details := domain.UserDetails{
				Name:    fmt.Sprintf("user-%d", userID),
				Phone:   fmt.Sprintf("9%09d", userID),
				Address: "42 Load Test Lane",
			}

			_, err := checkout.PlaceOrder(ctx, cart, details, fmt.Sprintf("pay-%d", userID))
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	effects.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	var orderCount int
	db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT order_id) FROM order_items WHERE item_id = ?`,
		item.ID).Scan(&orderCount)
	fmt.Printf("Orders persisted:  %d\n", orderCount)

	if success == totalRequests && orderCount == totalRequests {
		fmt.Println("PASS: every checkout produced exactly one persisted order")
	} else {
		fmt.Printf("FAIL: expected %d persisted orders, got %d (success=%d fail=%d)\n",
			totalRequests, orderCount, success, fail)
	}
}

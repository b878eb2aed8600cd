package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/quickbites/storefront/internal/adapter/handler"
	"github.com/quickbites/storefront/internal/adapter/messaging"
	"github.com/quickbites/storefront/internal/adapter/notify"
	"github.com/quickbites/storefront/internal/adapter/realtime"
	"github.com/quickbites/storefront/internal/adapter/storage"
	"github.com/quickbites/storefront/internal/core/service"
)

const (
	httpPort   = ":8080"
	mysqlDSN   = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	redisAddr  = "localhost:6379"
	natsURL    = "nats://localhost:4222"
	storePhone = "919876543210"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", envOr("MYSQL_DSN", mysqlDSN))
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", redisAddr),
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Println("connected to redis")

	// Initialize NATS
	nc, err := realtime.Connect(envOr("NATS_URL", natsURL))
	if err != nil {
		log.Fatalf("failed to connect nats: %v", err)
	}
	log.Println("connected to nats")

	// Initialize adapters
	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)
	notifier := notify.NewPushNotifier(nc, rdb)
	haptics := notify.NewClientHaptics(nc)
	chat := messaging.NewWhatsAppHandoff(nc, envOr("STORE_PHONE", storePhone))

	// Initialize services
	effects := service.NewEffectRunner()
	sessionService := service.NewSessionService(redisAdapter, nc, notifier, haptics)
	checkoutService := service.NewCheckoutService(mysqlAdapter, redisAdapter, notifier, haptics, chat, effects)
	adminGate := service.NewAdminGate(mysqlAdapter)

	// Drain deferred notifications in background
	go notifier.Run(ctx)

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(sessionService, checkoutService, adminGate, mysqlAdapter, redisAdapter)

	httpServer := &http.Server{
		Addr:    envOr("HTTP_ADDR", httpPort),
		Handler: httpHandler.Routes(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Stop the notification drain loop and the realtime watcher
	cancel()
	sessionService.Close()

	// Let in-flight side effects finish
	effects.Wait()
	log.Println("side effects drained")

	// Close connections
	nc.Close()
	rdb.Close()
	db.Close()
	log.Println("connections closed")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/JulioMoratelli/vila-mantos/internal/cartstore"
	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	h "github.com/JulioMoratelli/vila-mantos/internal/http"
	"github.com/JulioMoratelli/vila-mantos/internal/publisher"
	"github.com/JulioMoratelli/vila-mantos/internal/repository"
	s "github.com/JulioMoratelli/vila-mantos/internal/service"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	CheckoutTimeout time.Duration
	ShutdownTimeout time.Duration
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	Postgres        repository.Credentials
	Pricing         domain.Pricing
}

func loadConfig() *Config {
	pricing := domain.DefaultPricing()
	if v := os.Getenv("FREE_SHIPPING_THRESHOLD"); v != "" {
		pricing.FreeShippingThreshold = decimal.RequireFromString(v)
	}
	if v := os.Getenv("FLAT_SHIPPING_FEE"); v != "" {
		pricing.FlatShippingFee = decimal.RequireFromString(v)
	}

	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid POSTGRES_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		CheckoutTimeout: 15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		Postgres: repository.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              pgPort,
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "vilamantos"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		Pricing: pricing,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	repo, err := repository.NewRepository(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	carts := s.NewCartService(cartstore.NewRedisStore(redisClient))
	checkout := s.NewCheckoutService(carts, repo, cfg.Pricing, cfg.CheckoutTimeout)
	orders := s.NewOrderService(repo)
	products := s.NewProductService(repo)

	cartHandler := h.NewCartHandler(carts, cfg.Pricing, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkout, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orders, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(products, cfg.RequestTimeout)
	addressHandler := h.NewAddressHandler(repo, cfg.RequestTimeout)

	// Outbox poller drains order-confirmed events into Kafka.
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	poller := publisher.NewOutboxPoller(repo, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)
	r.Use(h.MockAuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}/{size}", cartHandler.UpdateQuantity)
			r.Put("/items/{product_id}/{size}/size", cartHandler.UpdateSize)
			r.Delete("/items/{product_id}/{size}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_number}", ordersHandler.GetOrder)
		})
		r.Route("/address", func(r chi.Router) {
			r.Get("/", addressHandler.GetDefaultAddress)
			r.Put("/", addressHandler.UpsertDefaultAddress)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

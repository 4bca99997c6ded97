package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type Repository struct {
	db *sql.DB
}

// AddressRepo is what checkout needs from the address table.
type AddressRepo interface {
	UpsertDefaultAddress(ctx context.Context, userID string, form domain.AddressForm) (*domain.Address, error)
	GetDefaultAddress(ctx context.Context, userID string) (*domain.Address, error)
}

// OrderWriter is the persistence surface of the checkout orchestrator.
type OrderWriter interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateOrderLines(ctx context.Context, lines []domain.OrderLine) error
	InsertOrderEvent(ctx context.Context, orderID uuid.UUID, eventType string, payload []byte) error
}

// OrderReader serves order history.
type OrderReader interface {
	GetOrderByNumber(ctx context.Context, userID, orderNumber string) (*domain.Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
}

// ProductRepo serves catalog reads.
type ProductRepo interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
}

// OutboxRepo is polled by the order-confirmed publisher.
type OutboxRepo interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	fmt.Println("Connected to postgres!")
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, team, description, price, original_price, images, sizes, stock, rating, review_count, is_promotion, category, created_at, updated_at`

func (r *Repository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Team != "" {
		args = append(args, filter.Team)
		query += fmt.Sprintf(" AND team = $%d", len(args))
	}
	if filter.PromotionOnly {
		query += " AND is_promotion"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR team ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return product, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var originalPrice decimal.NullDecimal
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Team,
		&p.Description,
		&p.Price,
		&originalPrice,
		pq.Array(&p.Images),
		pq.Array(&p.Sizes),
		&p.Stock,
		&p.Rating,
		&p.ReviewCount,
		&p.IsPromotion,
		&p.Category,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Decimal
	}
	return &p, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JulioMoratelli/vila-mantos/internal/domain"
	"github.com/google/uuid"
)

const addressColumns = `id, user_id, cep, street, number, complement, neighborhood, city, state, is_default, created_at, updated_at`

// UpsertDefaultAddress creates the user's default address or updates it in
// place. The partial unique index on (user_id) WHERE is_default guarantees a
// single default per user.
func (r *Repository) UpsertDefaultAddress(ctx context.Context, userID string, form domain.AddressForm) (*domain.Address, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin address upsert: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM addresses WHERE user_id = $1 AND is_default`, userID).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.New()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO addresses (id, user_id, cep, street, number, complement, neighborhood, city, state, is_default, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW(), NOW())`,
			id, userID, form.CEP, form.Street, form.Number, form.Complement, form.Neighborhood, form.City, form.State)
		if err != nil {
			return nil, fmt.Errorf("insert default address: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("query default address: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE addresses SET cep = $1, street = $2, number = $3, complement = $4, neighborhood = $5, city = $6, state = $7, updated_at = NOW()
			 WHERE id = $8`,
			form.CEP, form.Street, form.Number, form.Complement, form.Neighborhood, form.City, form.State, id)
		if err != nil {
			return nil, fmt.Errorf("update default address: %w", err)
		}
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	address, err := scanAddress(row)
	if err != nil {
		return nil, fmt.Errorf("reload upserted address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit address upsert: %w", err)
	}
	return address, nil
}

func (r *Repository) GetDefaultAddress(ctx context.Context, userID string) (*domain.Address, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 AND is_default`, userID)

	address, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query default address: %w", err)
	}
	return address, nil
}

func scanAddress(row *sql.Row) (*domain.Address, error) {
	var a domain.Address
	var complement sql.NullString
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.CEP,
		&a.Street,
		&a.Number,
		&complement,
		&a.Neighborhood,
		&a.City,
		&a.State,
		&a.IsDefault,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Complement = complement.String
	return &a, nil
}

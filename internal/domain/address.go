package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user's stored shipping address. At most one address per user
// is the default; checkout only consults the default.
type Address struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	CEP          string    `json:"cep"`
	Street       string    `json:"street"`
	Number       string    `json:"number"`
	Complement   string    `json:"complement,omitempty"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddressSnapshot is the frozen copy stored on an order. Later edits to the
// user's address must not alter historical orders, so orders never hold a
// live address reference.
type AddressSnapshot struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		CEP:          a.CEP,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
}

// AddressForm carries the fields a user fills in at checkout or on the
// profile page.
type AddressForm struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func (f AddressForm) IsZero() bool {
	return f.Street == ""
}

func (f AddressForm) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		CEP:          f.CEP,
		Street:       f.Street,
		Number:       f.Number,
		Complement:   f.Complement,
		Neighborhood: f.Neighborhood,
		City:         f.City,
		State:        f.State,
	}
}

package store

import (
	"context"

	"github.com/nulzo/zoo-api/internal/store/model"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Zoos() ZooRepository

	// Ping checks the underlying connection.
	Ping(ctx context.Context) error

	Close() error
}

// ZooRepository exposes row operations on the zoos table.
// Identifiers are taken verbatim from the caller; a value that matches no row
// is not an error.
type ZooRepository interface {
	// Insert writes a new row from fields and returns the ids assigned to it.
	Insert(ctx context.Context, fields model.Fields) ([]int64, error)
	// List returns every row.
	List(ctx context.Context) ([]model.Zoo, error)
	// FindByID returns the rows matching id.
	FindByID(ctx context.Context, id string) ([]model.Zoo, error)
	// Update overwrites the matching rows with fields and returns the affected count.
	Update(ctx context.Context, id string, fields model.Fields) (int64, error)
	// Delete removes the matching rows and returns the removed count.
	Delete(ctx context.Context, id string) (int64, error)
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"coke_oee/internal/models"
)

// ErrDatasetNotFound is returned when no dataset has the requested id.
var ErrDatasetNotFound = errors.New("dataset not found")

// Datasets stores ingested raw datasets. Stored datasets are never modified.
type Datasets interface {
	Save(ctx context.Context, ds models.Dataset) error
	Get(ctx context.Context, id string) (models.Dataset, error)
	List(ctx context.Context) ([]models.DatasetInfo, error)
}

// Operators stores the API users.
type Operators interface {
	Upsert(ctx context.Context, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

type Repository struct {
	Datasets  Datasets
	Operators Operators
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Datasets:  NewDatasetSQLite(db),
		Operators: NewOperatorRepository(db),
	}
}

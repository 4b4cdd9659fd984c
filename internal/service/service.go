package service

import (
	"context"
	"io"
	"time"

	"coke_oee/internal/logger"
	"coke_oee/internal/models"
	"coke_oee/internal/oee"
	"coke_oee/internal/repository"
)

type Authorization interface {
	EnsureOperator(ctx context.Context, username, passwordHash string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Ingestion turns uploaded workbooks into stored datasets.
type Ingestion interface {
	Ingest(ctx context.Context, stops, production io.Reader) (models.Dataset, error)
	List(ctx context.Context) ([]models.DatasetInfo, error)
	Ignored(ctx context.Context, id string) ([]models.IgnoredRow, error)
}

// Reports computes OEE reports on demand from a stored dataset. The
// reference time stands in for "now" when a default date range is needed.
type Reports interface {
	Report(ctx context.Context, datasetID string, f models.Filter, reference time.Time) (models.Report, error)
}

type Service struct {
	Authorization
	Ingestion
	Reports
}

// Options carries the plant settings shared by the services.
type Options struct {
	Location   *time.Location
	Targets    oee.Targets
	AuthSecret string
	TokenTTL   time.Duration
	Log        *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &Service{
		Authorization: NewAuthService(repos.Operators, opts.AuthSecret, opts.TokenTTL),
		Ingestion:     NewIngestionService(repos.Datasets, opts.Location, opts.Log),
		Reports:       NewReportService(repos.Datasets, opts.Targets, opts.Location, opts.Log),
	}
}

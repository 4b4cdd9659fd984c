package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"coke_oee/internal/ingest"
	"coke_oee/internal/logger"
	"coke_oee/internal/models"
	"coke_oee/internal/repository"
)

type IngestionService struct {
	datasets repository.Datasets
	loc      *time.Location
	log      *logger.Logger
	now      func() time.Time
}

func NewIngestionService(datasets repository.Datasets, loc *time.Location, log *logger.Logger) *IngestionService {
	return &IngestionService{datasets: datasets, loc: loc, log: log, now: time.Now}
}

// Ingest parses both workbooks and stores the result under a new id.
// Missing sheets or headers fail the whole upload; bad rows only end up in
// the dataset's ignored list.
func (s *IngestionService) Ingest(ctx context.Context, stops, production io.Reader) (models.Dataset, error) {
	ds, err := ingest.Load(stops, production, s.loc)
	if err != nil {
		s.log.Warnw("dataset_rejected", "err", err)
		return models.Dataset{}, err
	}
	ds.ID = uuid.NewString()
	ds.CreatedAt = s.now().UTC()

	if err := s.datasets.Save(ctx, ds); err != nil {
		return models.Dataset{}, fmt.Errorf("save dataset: %w", err)
	}
	s.log.Infow("dataset_ingested",
		"dataset_id", ds.ID,
		"stops", len(ds.Stops),
		"ignored", len(ds.Ignored),
		"production_days", len(ds.Production),
	)
	return ds, nil
}

func (s *IngestionService) List(ctx context.Context) ([]models.DatasetInfo, error) {
	return s.datasets.List(ctx)
}

// Ignored returns the rows rejected while ingesting the dataset.
func (s *IngestionService) Ignored(ctx context.Context, id string) ([]models.IgnoredRow, error) {
	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ds.Ignored, nil
}

package service

import (
	"context"

	"coke_oee/internal/models"
	"coke_oee/internal/repository"
)

// datasetRepoStub is an in-memory repository.Datasets.
type datasetRepoStub struct {
	saved   []models.Dataset
	saveErr error
	byID    map[string]models.Dataset
	getIDs  []string
}

var _ repository.Datasets = (*datasetRepoStub)(nil)

func (s *datasetRepoStub) Save(_ context.Context, ds models.Dataset) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, ds)
	return nil
}

func (s *datasetRepoStub) Get(_ context.Context, id string) (models.Dataset, error) {
	s.getIDs = append(s.getIDs, id)
	ds, ok := s.byID[id]
	if !ok {
		return models.Dataset{}, repository.ErrDatasetNotFound
	}
	return ds, nil
}

func (s *datasetRepoStub) List(context.Context) ([]models.DatasetInfo, error) {
	out := make([]models.DatasetInfo, 0, len(s.saved))
	for _, ds := range s.saved {
		out = append(out, models.DatasetInfo{ID: ds.ID, CreatedAt: ds.CreatedAt, Audit: ds.Audit})
	}
	return out, nil
}

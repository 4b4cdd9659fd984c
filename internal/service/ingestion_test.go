package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"coke_oee/internal/ingest"
	"coke_oee/internal/logger"
	"coke_oee/internal/models"
	"coke_oee/internal/repository"
)

func workbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func stopBook(t *testing.T) *bytes.Buffer {
	return workbook(t, "Apontamentos", [][]any{
		{"Processo", "Parou", "Início", "Fim", "Duração", "Área", "Tipo", "Descrição", "Equipamento"},
		{"Máquina Enfornadora", "Sim", "05/03/2024 09:00", "05/03/2024 09:50", 50, "Manutenção", "Corretiva", "", "EMP-01"},
		{"Forno", "Sim", "05/03/2024 10:00", "05/03/2024 11:00"},
	})
}

func productionBook(t *testing.T) *bytes.Buffer {
	row := make([]any, 21)
	row[1], row[9], row[10] = "05/03/2024", 151, 0.8
	return workbook(t, "Production", [][]any{row})
}

func TestIngestionService_Ingest(t *testing.T) {
	t.Parallel()

	repo := &datasetRepoStub{}
	svc := NewIngestionService(repo, time.UTC, logger.Nop())
	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ds, err := svc.Ingest(context.Background(), stopBook(t), productionBook(t))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if ds.ID == "" || !ds.CreatedAt.Equal(fixed) {
		t.Fatalf("id/created = %q/%v", ds.ID, ds.CreatedAt)
	}
	if len(ds.Stops) != 1 || len(ds.Ignored) != 1 || ds.Production["2024-03-05"].YieldPct != 80 {
		t.Fatalf("dataset = %+v", ds)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != ds.ID {
		t.Fatalf("saved = %+v", repo.saved)
	}

	list, _ := svc.List(context.Background())
	if len(list) != 1 || list[0].Audit.StopCount != 1 {
		t.Fatalf("list = %+v", list)
	}
}

func TestIngestionService_Ingest_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing production sheet", func(t *testing.T) {
		t.Parallel()
		repo := &datasetRepoStub{}
		svc := NewIngestionService(repo, time.UTC, logger.Nop())
		_, err := svc.Ingest(context.Background(), stopBook(t), workbook(t, "Resumo", nil))
		if !errors.Is(err, ingest.ErrSheetNotFound) {
			t.Fatalf("err = %v", err)
		}
		if len(repo.saved) != 0 {
			t.Fatalf("rejected dataset was saved")
		}
	})

	t.Run("save failure", func(t *testing.T) {
		t.Parallel()
		repo := &datasetRepoStub{saveErr: errors.New("disk full")}
		svc := NewIngestionService(repo, time.UTC, logger.Nop())
		if _, err := svc.Ingest(context.Background(), stopBook(t), productionBook(t)); err == nil {
			t.Fatalf("expected save error")
		}
	})
}

func TestIngestionService_Ignored(t *testing.T) {
	t.Parallel()

	repo := &datasetRepoStub{byID: map[string]models.Dataset{
		"ds-1": {ID: "ds-1", Ignored: []models.IgnoredRow{{Row: 4, Reason: "Processo: forno"}}},
	}}
	svc := NewIngestionService(repo, time.UTC, logger.Nop())

	rows, err := svc.Ignored(context.Background(), "ds-1")
	if err != nil || len(rows) != 1 || rows[0].Row != 4 {
		t.Fatalf("Ignored = %+v, %v", rows, err)
	}
	if _, err := svc.Ignored(context.Background(), "nope"); !errors.Is(err, repository.ErrDatasetNotFound) {
		t.Fatalf("err = %v", err)
	}
}

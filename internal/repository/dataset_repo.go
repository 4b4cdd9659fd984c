package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coke_oee/internal/models"
)

type DatasetSQLite struct {
	db *sql.DB
}

func NewDatasetSQLite(db *sql.DB) *DatasetSQLite { return &DatasetSQLite{db: db} }

var _ Datasets = (*DatasetSQLite)(nil)

// sqliteTimestamp is the TIMESTAMP text format SQLite sorts correctly.
const sqliteTimestamp = "2006-01-02 15:04:05"

const (
	insertDatasetSQL = `INSERT INTO datasets (id, created_at, audit) VALUES (?, ?, ?)`
	insertStopSQL    = `INSERT INTO stop_events (dataset_id, seq, start_at, end_at, duration_min, production_date,
    area, type, description, equipment, component, failure_mode, stopped_flag, station_side, quench_tag)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertProductionSQL = `INSERT INTO production_records (dataset_id, date_key, recorded_at, planned_ovens,
    actual_ovens, oven_count, yield_pct, water_m3, wet_charge_ton) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertIgnoredSQL = `INSERT INTO ignored_rows (dataset_id, row_num, reason) VALUES (?, ?, ?)`

	selectDatasetSQL = `SELECT id, created_at, audit FROM datasets WHERE id = ?`
	selectStopsSQL   = `SELECT start_at, end_at, duration_min, production_date, area, type, description,
    equipment, component, failure_mode, stopped_flag, station_side, quench_tag
    FROM stop_events WHERE dataset_id = ? ORDER BY seq`
	selectProductionSQL = `SELECT date_key, recorded_at, planned_ovens, actual_ovens, oven_count, yield_pct,
    water_m3, wet_charge_ton FROM production_records WHERE dataset_id = ?`
	selectIgnoredSQL  = `SELECT row_num, reason FROM ignored_rows WHERE dataset_id = ? ORDER BY row_num`
	selectDatasetsSQL = `SELECT id, created_at, audit FROM datasets ORDER BY created_at DESC`
)

// Save writes the dataset and all of its rows in one transaction. Missing id
// and creation time are filled in; the caller's value is not modified.
func (r *DatasetSQLite) Save(ctx context.Context, ds models.Dataset) error {
	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}
	if ds.CreatedAt.IsZero() {
		ds.CreatedAt = time.Now()
	}
	audit, err := json.Marshal(ds.Audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dataset %s: %w", ds.ID, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertDatasetSQL, ds.ID, ds.CreatedAt.UTC().Format(sqliteTimestamp), string(audit)); err != nil {
		return fmt.Errorf("insert dataset %s: %w", ds.ID, err)
	}
	for i, ev := range ds.Stops {
		if _, err := tx.ExecContext(ctx, insertStopSQL, ds.ID, i,
			ev.Start.Format(time.RFC3339Nano), ev.End.Format(time.RFC3339Nano), ev.DurationMin, ev.ProductionDate,
			ev.Area, ev.Type, ev.Description, ev.Equipment, ev.Component, ev.FailureMode,
			ev.StoppedFlag, ev.StationSide, ev.QuenchTag,
		); err != nil {
			return fmt.Errorf("insert stop %d: %w", i, err)
		}
	}
	for key, rec := range ds.Production {
		if _, err := tx.ExecContext(ctx, insertProductionSQL, ds.ID, key, rec.Date.Format(time.RFC3339Nano),
			rec.PlannedOvens, rec.ActualOvens, rec.OvenCount, rec.YieldPct, rec.WaterM3, rec.WetChargeTon,
		); err != nil {
			return fmt.Errorf("insert production %s: %w", key, err)
		}
	}
	for _, ig := range ds.Ignored {
		if _, err := tx.ExecContext(ctx, insertIgnoredSQL, ds.ID, ig.Row, ig.Reason); err != nil {
			return fmt.Errorf("insert ignored row %d: %w", ig.Row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset %s: %w", ds.ID, err)
	}
	return nil
}

// Get loads a full dataset. It returns ErrDatasetNotFound for unknown ids.
func (r *DatasetSQLite) Get(ctx context.Context, id string) (models.Dataset, error) {
	var ds models.Dataset
	var audit string
	err := r.db.QueryRowContext(ctx, selectDatasetSQL, id).Scan(&ds.ID, &ds.CreatedAt, &audit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, ErrDatasetNotFound
		}
		return models.Dataset{}, fmt.Errorf("select dataset %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(audit), &ds.Audit); err != nil {
		return models.Dataset{}, fmt.Errorf("decode audit of %s: %w", id, err)
	}

	if ds.Stops, err = r.stops(ctx, id); err != nil {
		return models.Dataset{}, err
	}
	if ds.Production, err = r.production(ctx, id); err != nil {
		return models.Dataset{}, err
	}
	if ds.Ignored, err = r.ignored(ctx, id); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

func (r *DatasetSQLite) stops(ctx context.Context, id string) ([]models.StopEvent, error) {
	rows, err := r.db.QueryContext(ctx, selectStopsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select stops of %s: %w", id, err)
	}
	defer rows.Close()

	out := make([]models.StopEvent, 0, 256)
	for rows.Next() {
		var ev models.StopEvent
		var start, end string
		if err := rows.Scan(&start, &end, &ev.DurationMin, &ev.ProductionDate, &ev.Area, &ev.Type,
			&ev.Description, &ev.Equipment, &ev.Component, &ev.FailureMode, &ev.StoppedFlag,
			&ev.StationSide, &ev.QuenchTag); err != nil {
			return nil, err
		}
		if ev.Start, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return nil, fmt.Errorf("parse stop start %q: %w", start, err)
		}
		if ev.End, err = time.Parse(time.RFC3339Nano, end); err != nil {
			return nil, fmt.Errorf("parse stop end %q: %w", end, err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *DatasetSQLite) production(ctx context.Context, id string) (map[string]models.ProductionRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectProductionSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select production of %s: %w", id, err)
	}
	defer rows.Close()

	out := make(map[string]models.ProductionRecord)
	for rows.Next() {
		var key, recorded string
		var rec models.ProductionRecord
		if err := rows.Scan(&key, &recorded, &rec.PlannedOvens, &rec.ActualOvens, &rec.OvenCount,
			&rec.YieldPct, &rec.WaterM3, &rec.WetChargeTon); err != nil {
			return nil, err
		}
		if rec.Date, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
			return nil, fmt.Errorf("parse production date %q: %w", recorded, err)
		}
		out[key] = rec
	}
	return out, rows.Err()
}

func (r *DatasetSQLite) ignored(ctx context.Context, id string) ([]models.IgnoredRow, error) {
	rows, err := r.db.QueryContext(ctx, selectIgnoredSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select ignored rows of %s: %w", id, err)
	}
	defer rows.Close()

	out := make([]models.IgnoredRow, 0, 16)
	for rows.Next() {
		var ig models.IgnoredRow
		if err := rows.Scan(&ig.Row, &ig.Reason); err != nil {
			return nil, err
		}
		out = append(out, ig)
	}
	return out, rows.Err()
}

// List returns every stored dataset, newest first, without its rows.
func (r *DatasetSQLite) List(ctx context.Context) ([]models.DatasetInfo, error) {
	rows, err := r.db.QueryContext(ctx, selectDatasetsSQL)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	out := make([]models.DatasetInfo, 0, 16)
	for rows.Next() {
		var info models.DatasetInfo
		var audit string
		if err := rows.Scan(&info.ID, &info.CreatedAt, &audit); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(audit), &info.Audit); err != nil {
			return nil, fmt.Errorf("decode audit of %s: %w", info.ID, err)
		}
		info.CreatedAt = info.CreatedAt.UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"coke_oee/internal/models"
)

var (
	// ErrSheetNotFound is returned when the production workbook has no production sheet.
	ErrSheetNotFound = errors.New("production sheet not found")
	// ErrInvalidWorkbook is returned when an upload is not a readable .xlsx document.
	ErrInvalidWorkbook = errors.New("invalid workbook")
)

// Workbook is an opened spreadsheet. Cells are read as their raw stored
// text, so dates arrive as serial numbers; blanks are nil.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook reads an .xlsx document.
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	return &Workbook{file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// StopSheet picks the first sheet whose name mentions "Apont" or "Dados",
// falling back to the first sheet.
func (w *Workbook) StopSheet() string {
	sheets := w.file.GetSheetList()
	for _, name := range sheets {
		if strings.Contains(name, "Apont") || strings.Contains(name, "Dados") {
			return name
		}
	}
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}

// ProductionSheet picks the first sheet named like "Production" or "Produção".
func (w *Workbook) ProductionSheet() (string, error) {
	for _, name := range w.file.GetSheetList() {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "production") || strings.Contains(lower, "produção") {
			return name, nil
		}
	}
	return "", ErrSheetNotFound
}

// Rows returns every row of sheet as raw cell values.
func (w *Workbook) Rows(sheet string) ([][]any, error) {
	raw, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	rows := make([][]any, len(raw))
	for i, r := range raw {
		cells := make([]any, len(r))
		for j, c := range r {
			cells[j] = rawCell(c)
		}
		rows[i] = cells
	}
	return rows, nil
}

func rawCell(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}

// Load reads the stop and production workbooks into a dataset. Wall-clock
// times are interpreted in loc.
func Load(stops, production io.Reader, loc *time.Location) (models.Dataset, error) {
	stopBook, err := OpenWorkbook(stops)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("stops: %w", err)
	}
	defer stopBook.Close()

	stopRows, err := stopBook.Rows(stopBook.StopSheet())
	if err != nil {
		return models.Dataset{}, fmt.Errorf("stops: %w", err)
	}
	stopLog, err := BuildStops(stopRows, loc)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("stops: %w", err)
	}

	prodBook, err := OpenWorkbook(production)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("production: %w", err)
	}
	defer prodBook.Close()

	sheet, err := prodBook.ProductionSheet()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("production: %w", err)
	}
	prodRows, err := prodBook.Rows(sheet)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("production: %w", err)
	}

	return Assemble(stopLog, BuildProduction(prodRows, loc)), nil
}

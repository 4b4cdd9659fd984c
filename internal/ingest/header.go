package ingest

import (
	"errors"
	"strings"
)

// ErrHeaderNotFound is returned when no stop log header row appears in the scanned rows.
var ErrHeaderNotFound = errors.New("stop log header row not found")

// headerScanRows bounds how far down the sheet the header is searched for.
const headerScanRows = 50

// Fallback positions used when the header has no matching column.
const (
	fallbackSideColumn   = 3
	fallbackQuenchColumn = 5
)

// stopColumns holds the 0-based position of each stop log field; -1 is missing.
type stopColumns struct {
	Process     int
	Stopped     int
	Start       int
	End         int
	Area        int
	Type        int
	Description int
	Equipment   int
	Component   int
	Mode        int
	Side        int
	Quench      int
}

// LocateHeader finds the first row, within the scan limit, that mentions both
// the process and duration columns.
func LocateHeader(rows [][]any) (int, error) {
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		parts := make([]string, 0, len(rows[i]))
		for _, c := range rows[i] {
			parts = append(parts, cellString(c))
		}
		line := strings.ToLower(strings.Join(parts, "|"))
		if strings.Contains(line, "processo") && (strings.Contains(line, "duração") || strings.Contains(line, "duracao")) {
			return i, nil
		}
	}
	return -1, ErrHeaderNotFound
}

// mapColumns resolves each field to the first header cell containing one of its markers.
func mapColumns(header []any) stopColumns {
	head := make([]string, len(header))
	for i, c := range header {
		head[i] = strings.ToLower(strings.TrimSpace(cellString(c)))
	}
	find := func(markers ...string) int {
		for i, h := range head {
			for _, m := range markers {
				if strings.Contains(h, m) {
					return i
				}
			}
		}
		return -1
	}

	cols := stopColumns{
		Process:     find("processo"),
		Stopped:     find("parou"),
		Start:       find("início", "inicio"),
		End:         find("fim"),
		Area:        find("área", "responsável"),
		Type:        find("tipo"),
		Description: find("descrição"),
		Equipment:   find("equipamento", "tag"),
		Component:   find("componente", "causa"),
		Mode:        find("modo", "desvio", "falha"),
		Side:        find("bateria", "local", "área executante"),
		Quench:      find("quench"),
	}
	if cols.Quench < 0 {
		cols.Quench = fallbackQuenchColumn
	}
	return cols
}

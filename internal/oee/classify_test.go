package oee

import (
	"testing"
	"time"

	"coke_oee/internal/models"
)

func TestProductionDate_NoonCutover(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "before noon stays", in: at(2024, time.March, 1, 11, 59), want: "2024-03-01"},
		{name: "noon moves forward", in: at(2024, time.March, 1, 12, 0), want: "2024-03-02"},
		{name: "midnight stays", in: at(2024, time.March, 1, 0, 0), want: "2024-03-01"},
		{name: "month rollover", in: at(2024, time.February, 29, 23, 10), want: "2024-03-01"},
		{name: "year rollover", in: at(2023, time.December, 31, 18, 0), want: "2024-01-01"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DateKey(ProductionDate(tc.in)); got != tc.want {
				t.Fatalf("ProductionDate(%v) = %s; want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestProductionDate_KeepsLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("BRT", -3*3600)
	got := ProductionDate(time.Date(2024, time.March, 1, 13, 0, 0, 0, loc))
	if got.Location() != loc || got.Day() != 2 || got.Hour() != 0 {
		t.Fatalf("unexpected production date %v", got)
	}
}

func TestClassify_Priority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ev   models.StopEvent
		want Category
	}{
		{
			name: "window wins over everything",
			ev:   models.StopEvent{StationSide: "JANELA C/D", Area: "Manutenção", StoppedFlag: "sim", Description: "troca de turno"},
			want: CategoryWindow,
		},
		{
			name: "shift change wins over stopped flag",
			ev:   models.StopEvent{FailureMode: "Passagem", Description: " de turno", Area: "Manutenção", StoppedFlag: "sim"},
			want: CategoryShiftChange,
		},
		{
			name: "shift change counts even when not stopped",
			ev:   models.StopEvent{Description: "turno B", StoppedFlag: "não"},
			want: CategoryShiftChange,
		},
		{
			name: "maintenance area stopped is failure",
			ev:   models.StopEvent{Area: "Manutenção Elétrica", StoppedFlag: "sim"},
			want: CategoryFailure,
		},
		{
			name: "production area stopped is operational",
			ev:   models.StopEvent{Area: "Produção", StoppedFlag: "sim"},
			want: CategoryOperationalLoss,
		},
		{
			name: "external area stopped is operational",
			ev:   models.StopEvent{Area: "Externo", StoppedFlag: "sim"},
			want: CategoryOperationalLoss,
		},
		{
			name: "other area stopped is uncategorized",
			ev:   models.StopEvent{Area: "Utilidades", StoppedFlag: "sim"},
			want: CategoryNone,
		},
		{
			name: "not stopped is uncategorized",
			ev:   models.StopEvent{Area: "Manutenção", StoppedFlag: "não"},
			want: CategoryNone,
		},
		{
			name: "generic janela marker is not a window",
			ev:   models.StopEvent{StationSide: "Janela E/F", Area: "Manutenção", StoppedFlag: "sim"},
			want: CategoryFailure,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.ev); got != tc.want {
				t.Fatalf("Classify = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestSideOf(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Side{
		"Quench Norte": SideNorte,
		"NORTH":        SideNorte,
		"Sul":          SideSul,
		"":             SideSul,
		"leste":        SideSul,
	} {
		if got := SideOf(models.StopEvent{QuenchTag: in}); got != want {
			t.Errorf("SideOf(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestSplitWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                   string
		start, end             time.Time
		total, inside, outside float64
	}{
		{name: "fully inside", start: at(2024, 3, 5, 9, 0), end: at(2024, 3, 5, 10, 0), total: 60, inside: 60, outside: 0},
		{name: "straddles start", start: at(2024, 3, 5, 7, 0), end: at(2024, 3, 5, 9, 0), total: 120, inside: 60, outside: 60},
		{name: "straddles end", start: at(2024, 3, 5, 12, 0), end: at(2024, 3, 5, 14, 30), total: 150, inside: 60, outside: 90},
		{name: "covers window", start: at(2024, 3, 5, 6, 0), end: at(2024, 3, 5, 18, 0), total: 720, inside: 300, outside: 420},
		{name: "after window", start: at(2024, 3, 5, 14, 0), end: at(2024, 3, 5, 15, 0), total: 60, inside: 0, outside: 60},
		{name: "next day window ignored", start: at(2024, 3, 5, 20, 0), end: at(2024, 3, 6, 9, 0), total: 780, inside: 0, outside: 780},
		{name: "inverted clamps to zero", start: at(2024, 3, 5, 10, 0), end: at(2024, 3, 5, 9, 0), total: 0, inside: 0, outside: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SplitWindow(tc.start, tc.end)
			approx(t, "total", got.Total, tc.total)
			approx(t, "inside", got.Inside, tc.inside)
			approx(t, "outside", got.Outside, tc.outside)
			approx(t, "sum", got.Inside+got.Outside, got.Total)
		})
	}
}

func TestDateKey_Invalid(t *testing.T) {
	t.Parallel()

	if got := DateKey(time.Time{}); got != "" {
		t.Fatalf("zero time key = %q; want empty", got)
	}
	if got := DateKey(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)); got != "" {
		t.Fatalf("year 10000 key = %q; want empty", got)
	}
}

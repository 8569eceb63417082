package billing

import (
	"testing"
	"time"

	"github.com/promise4039/gagebu/internal/dates"
	"github.com/promise4039/gagebu/internal/model"
)

// date parses a fixture date, panicking on typos so tests fail loudly.
func date(s string) time.Time {
	d, ok := dates.Parse(s)
	if !ok {
		panic("bad fixture date " + s)
	}
	return d
}

func TestResolveVersion(t *testing.T) {
	v2020 := model.CardVersion{ID: "v1", CardID: "c1", ValidFrom: date("2020-01-01")}
	v2023 := model.CardVersion{ID: "v2", CardID: "c1", ValidFrom: date("2023-06-01")}
	v2025 := model.CardVersion{ID: "v3", CardID: "c1", ValidFrom: date("2025-01-01")}
	versions := []model.CardVersion{v2020, v2023, v2025}

	tests := []struct {
		name   string
		ref    string
		wantID string
	}{
		{name: "before all falls back to earliest", ref: "2019-05-01", wantID: "v1"},
		{name: "exactly on valid-from", ref: "2023-06-01", wantID: "v2"},
		{name: "between versions", ref: "2024-03-15", wantID: "v2"},
		{name: "after all", ref: "2026-01-01", wantID: "v3"},
		{name: "day before boundary", ref: "2023-05-31", wantID: "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveVersion(versions, date(tt.ref))
			if !ok {
				t.Fatal("ResolveVersion ok = false, want true")
			}
			if got.ID != tt.wantID {
				t.Errorf("ResolveVersion(%s) = %s, want %s", tt.ref, got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveVersionEmpty(t *testing.T) {
	if _, ok := ResolveVersion(nil, date("2024-01-01")); ok {
		t.Error("ResolveVersion(nil) ok = true, want false")
	}
}

func TestVersionsByCardSorts(t *testing.T) {
	versions := []model.CardVersion{
		{ID: "late", CardID: "c1", ValidFrom: date("2024-01-01")},
		{ID: "early", CardID: "c1", ValidFrom: date("2020-01-01")},
		{ID: "other", CardID: "c2", ValidFrom: date("2022-01-01")},
	}

	byCard := VersionsByCard(versions)
	if len(byCard["c1"]) != 2 || len(byCard["c2"]) != 1 {
		t.Fatalf("unexpected grouping: %v", byCard)
	}
	if byCard["c1"][0].ID != "early" || byCard["c1"][1].ID != "late" {
		t.Errorf("c1 versions not sorted by valid-from: %s, %s",
			byCard["c1"][0].ID, byCard["c1"][1].ID)
	}
}

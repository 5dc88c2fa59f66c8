package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/timeuse-cli/internal/manifest"
	"github.com/google/uuid"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	run := manifest.New("stadat.csv", dir)
	run.Activity = "Income producing activity"
	run.Sex = "total"
	run.Add(manifest.KindStats, filepath.Join(dir, "activity_descriptive_stats.csv"), "per-activity statistics")
	run.Add(manifest.KindChart, filepath.Join(dir, "charts", "b.png"), "b")
	run.Add(manifest.KindChart, filepath.Join(dir, "charts", "a.png"), "a")
	run.Add(manifest.KindWorkbook, "/elsewhere/out.xlsx", "workbook")
	run.Trend = &manifest.Trend{Slope: -0.5, N: 4}

	if err := run.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := manifest.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", got.ID, err)
	}
	if got.ID != run.ID || got.Activity != run.Activity || got.RootDir() != dir {
		t.Fatalf("loaded run = %+v", got)
	}
	if got.Artifacts[0].Path != "activity_descriptive_stats.csv" {
		t.Fatalf("artifact path = %q, want relative", got.Artifacts[0].Path)
	}
	if got.Artifacts[3].Path != "/elsewhere/out.xlsx" {
		t.Fatalf("outside path rewritten: %q", got.Artifacts[3].Path)
	}
	charts := got.ByKind(manifest.KindChart)
	if len(charts) != 2 || charts[0].Path != filepath.Join("charts", "a.png") {
		t.Fatalf("charts = %+v", charts)
	}
	if got.Trend == nil || got.Trend.Slope != -0.5 {
		t.Fatalf("trend = %+v", got.Trend)
	}
	if got.FinishedAt.Before(got.StartedAt) {
		t.Fatalf("finished before started")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := manifest.Load(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

func TestSaveWithoutRoot(t *testing.T) {
	if err := (&manifest.Run{}).Save(); err == nil {
		t.Fatalf("expected error without root dir")
	}
}

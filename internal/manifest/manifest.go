package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/KaramelBytes/timeuse-cli/internal/utils"
	"github.com/google/uuid"
)

// FileName is the manifest written next to the run outputs.
const FileName = "manifest.json"

// Artifact kinds.
const (
	KindCleaned  = "cleaned_table"
	KindStats    = "stats_table"
	KindChart    = "chart"
	KindWorkbook = "workbook"
)

// Run records one pipeline execution and the files it produced.
type Run struct {
	ID         string      `json:"id"`
	Input      string      `json:"input"`
	Activity   string      `json:"activity"`
	Sex        string      `json:"sex"`
	Rows       int         `json:"rows"`
	Columns    int         `json:"columns"`
	Artifacts  []*Artifact `json:"artifacts"`
	Trend      *Trend      `json:"trend,omitempty"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`

	// Not serialized: directory holding manifest.json
	rootDir string `json:"-"`
}

// Artifact is one output file.
type Artifact struct {
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Trend keeps the regression coefficients of the run.
type Trend struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	RSquared    float64 `json:"r_squared"`
	N           int     `json:"n"`
	TotalChange float64 `json:"total_change"`
}

// New starts an in-memory run record. Call Save() to persist.
func New(input, rootDir string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Input:     input,
		StartedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// Load reads manifest.json from dir.
func Load(dir string) (*Run, error) {
	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	r.rootDir = dir
	return &r, nil
}

// RootDir returns the directory the manifest is written to.
func (r *Run) RootDir() string { return r.rootDir }

// Add records an output file. Paths inside the root directory are stored relative to it.
func (r *Run) Add(kind, path, description string) {
	if rel, err := filepath.Rel(r.rootDir, path); err == nil && filepath.IsLocal(rel) {
		path = rel
	}
	r.Artifacts = append(r.Artifacts, &Artifact{Kind: kind, Path: path, Description: description})
}

// ByKind returns the artifacts of one kind sorted by path.
func (r *Run) ByKind(kind string) []*Artifact {
	var out []*Artifact
	for _, a := range r.Artifacts {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Save writes manifest.json using atomic write.
func (r *Run) Save() error {
	if r.rootDir == "" {
		return errors.New("manifest root directory not set")
	}
	r.FinishedAt = time.Now()
	data, err := utils.PrettyJSON(r)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(r.rootDir, FileName), data)
}

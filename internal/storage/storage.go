package storage

import (
	"time"

	"csweep/internal/config"
	"csweep/internal/domain"
)

// Storage persists and loads sweep results (e.g. for the failures viewer
// and for resweeping only failed projects).
type Storage interface {
	Save(runID string, results []domain.ProjectResult, failures []domain.TestFailure, duration time.Duration, toolchain string) error
	Load() (*domain.SweepOutput, error)
	// SaveOutput writes the full output (e.g. after resolve-marking updates).
	SaveOutput(output *domain.SweepOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

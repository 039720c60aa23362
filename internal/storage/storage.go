package storage

import (
	"time"

	"ctp/internal/config"
	"ctp/internal/domain"
)

// Storage persists and loads test run results (e.g. for the fails viewer).
type Storage interface {
	Save(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, pipelined bool) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after resolved-status updates).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

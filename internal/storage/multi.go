package storage

import (
	"errors"

	"shapecheck/internal/domain"
)

// MultiStorage writes to every sink and reads from the first
type MultiStorage struct {
	sinks []Storage
}

// NewMultiStorage creates a MultiStorage; the first sink is the primary one
func NewMultiStorage(primary Storage, others ...Storage) *MultiStorage {
	return &MultiStorage{sinks: append([]Storage{primary}, others...)}
}

// Save saves the run to every sink, returning all errors joined
func (m *MultiStorage) Save(run *domain.Run) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Save(run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load reads from the primary sink
func (m *MultiStorage) Load() (*domain.TestResultsOutput, error) {
	return m.sinks[0].Load()
}

// SaveOutput writes the output to every sink
func (m *MultiStorage) SaveOutput(output *domain.TestResultsOutput) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.SaveOutput(output); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

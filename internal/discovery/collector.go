package discovery

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shapecheck/internal/domain"
	"shapecheck/internal/harness"
)

// ErrUnknownMarker is returned under strict markers when a case uses an unregistered marker
var ErrUnknownMarker = errors.New("unknown marker")

// Warning is a non-fatal collection problem
type Warning struct {
	TestID string
	Marker string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: unknown marker %q - is this a typo? register it with `markers` in shapecheck.yaml", w.TestID, w.Marker)
}

// Collection is the result of collecting one or more suites
type Collection struct {
	Tests    []domain.Test
	Warnings []Warning
}

// Collector expands suites into runnable tests
type Collector struct {
	registry *harness.Registry
	fixtures *harness.Fixtures
	strict   bool
	logger   *zap.Logger
}

// NewCollector creates a new Collector
func NewCollector(registry *harness.Registry, fixtures *harness.Fixtures, strict bool, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		registry: registry,
		fixtures: fixtures,
		strict:   strict,
		logger:   logger,
	}
}

// Collect registers the markers and fixtures of every suite, then expands each case into
// one test per parameter row, in declaration order.
func (c *Collector) Collect(suites ...harness.Suite) (*Collection, error) {
	for _, s := range suites {
		for _, line := range s.Markers {
			if err := c.registry.AddLine(line); err != nil {
				return nil, fmt.Errorf("suite %s: %w", s.Name, err)
			}
		}
		for _, f := range s.Fixtures {
			if err := c.fixtures.Register(f); err != nil {
				return nil, fmt.Errorf("suite %s: %w", s.Name, err)
			}
		}
	}

	collection := &Collection{}
	for _, s := range suites {
		for _, tc := range s.Cases {
			tests, err := c.expand(tc)
			if err != nil {
				return nil, err
			}

			for _, unknown := range c.registry.Unknown(tc.Markers) {
				w := Warning{TestID: TestID(tc.Module, tc.Name), Marker: unknown}
				if c.strict {
					return nil, fmt.Errorf("%w: %q on %s", ErrUnknownMarker, unknown, w.TestID)
				}
				c.logger.Warn("unknown marker", zap.String("test", w.TestID), zap.String("marker", unknown))
				collection.Warnings = append(collection.Warnings, w)
			}

			collection.Tests = append(collection.Tests, tests...)
		}
	}

	c.logger.Debug("collected tests", zap.Int("count", len(collection.Tests)), zap.Int("suites", len(suites)))
	return collection, nil
}

func (c *Collector) expand(tc harness.Case) ([]domain.Test, error) {
	markers := tc.AllMarkers()
	if tc.Params == nil {
		return []domain.Test{{
			ID:      TestID(tc.Module, tc.Name),
			Module:  tc.Module,
			Name:    tc.Name,
			Markers: markers,
			Case:    tc,
		}}, nil
	}

	rows, err := tc.Params.Expand()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TestID(tc.Module, tc.Name), err)
	}

	tests := make([]domain.Test, 0, len(rows))
	for _, p := range rows {
		name := fmt.Sprintf("%s[%s]", tc.Name, p.ID)
		tests = append(tests, domain.Test{
			ID:      TestID(tc.Module, name),
			Module:  tc.Module,
			Name:    name,
			Markers: markers,
			Case:    tc,
			Params:  p,
		})
	}
	return tests, nil
}

// TestID joins a module and a case name
func TestID(module, name string) string {
	if module == "" {
		return name
	}
	return module + "::" + name
}

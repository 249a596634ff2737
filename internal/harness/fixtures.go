package harness

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownFixture is returned when a case requests a fixture nobody provides
	ErrUnknownFixture = errors.New("unknown fixture")
	// ErrDuplicateFixture is returned when two fixtures share a name
	ErrDuplicateFixture = errors.New("duplicate fixture")
)

// Fixture is a named piece of per-case test state.
// Setup runs once for every case that requests the fixture; the value is never
// shared between cases. Teardown is optional.
type Fixture struct {
	Name     string
	Setup    func(ctx context.Context) (any, error)
	Teardown func(value any) error
}

// Fixtures is the set of fixtures available to a run
type Fixtures struct {
	mu       sync.RWMutex
	fixtures map[string]Fixture
}

// NewFixtures creates an empty fixture set
func NewFixtures() *Fixtures {
	return &Fixtures{fixtures: make(map[string]Fixture)}
}

// Register adds a fixture
func (f *Fixtures) Register(fixture Fixture) error {
	if fixture.Name == "" || fixture.Setup == nil {
		return fmt.Errorf("fixture %q: name and setup are required", fixture.Name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.fixtures[fixture.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFixture, fixture.Name)
	}
	f.fixtures[fixture.Name] = fixture
	return nil
}

// Has reports whether a fixture is registered
func (f *Fixtures) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.fixtures[name]
	return ok
}

// Resolve sets up the named fixtures for a single case.
// On error, fixtures already set up are torn down before returning.
func (f *Fixtures) Resolve(ctx context.Context, names []string) (*Values, error) {
	values := &Values{values: make(map[string]any, len(names))}

	for _, name := range names {
		f.mu.RLock()
		fixture, ok := f.fixtures[name]
		f.mu.RUnlock()
		if !ok {
			values.Close()
			return nil, fmt.Errorf("%w: %s", ErrUnknownFixture, name)
		}

		value, err := fixture.Setup(ctx)
		if err != nil {
			values.Close()
			return nil, fmt.Errorf("fixture %s setup: %w", name, err)
		}
		values.values[name] = value
		values.order = append(values.order, fixture)
	}

	return values, nil
}

// Values are the fixture values resolved for one case
type Values struct {
	values map[string]any
	order  []Fixture
}

// Get returns the value of the named fixture
func (v *Values) Get(name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	value, ok := v.values[name]
	return value, ok
}

// Close tears fixtures down in reverse setup order
func (v *Values) Close() error {
	if v == nil {
		return nil
	}

	var errs []error
	for i := len(v.order) - 1; i >= 0; i-- {
		fixture := v.order[i]
		if fixture.Teardown == nil {
			continue
		}
		if err := fixture.Teardown(v.values[fixture.Name]); err != nil {
			errs = append(errs, fmt.Errorf("fixture %s teardown: %w", fixture.Name, err))
		}
	}
	v.order = nil
	return errors.Join(errs...)
}

package harness

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidMarker is returned when a marker name is not a valid identifier
var ErrInvalidMarker = errors.New("invalid marker name")

var markerNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Marker is a tag attached to cases for selection
type Marker struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// builtinMarkers are known to every registry
var builtinMarkers = []Marker{
	{Name: "skip", Description: "skip the given test function with an optional reason"},
	{Name: "xfail", Description: "mark the test function as an expected failure"},
	{Name: "parametrize", Description: "call a test function multiple times passing in different arguments in turn"},
}

// Registry holds the markers the runner recognizes
type Registry struct {
	mu      sync.RWMutex
	markers map[string]Marker
}

// NewRegistry creates a Registry with the built-in markers
func NewRegistry() *Registry {
	r := &Registry{markers: make(map[string]Marker)}
	for _, m := range builtinMarkers {
		r.markers[m.Name] = m
	}
	return r
}

// Register adds or replaces a marker
func (r *Registry) Register(name, description string) error {
	name = strings.TrimSpace(name)
	if !markerNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidMarker, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[name] = Marker{Name: name, Description: strings.TrimSpace(description)}
	return nil
}

// AddLine registers a marker from an ini style line such as
// "slow: marks tests as slow" or "env(name): run only on the named env".
func (r *Registry) AddLine(line string) error {
	name, description, _ := strings.Cut(line, ":")
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return r.Register(name, description)
}

// Lookup returns the marker registered under name
func (r *Registry) Lookup(name string) (Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.markers[name]
	return m, ok
}

// Markers returns all registered markers sorted by name
func (r *Registry) Markers() []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unknown returns the names in markers that are not registered, in input order
func (r *Registry) Unknown(markers []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var unknown []string
	for _, m := range markers {
		if _, ok := r.markers[m]; !ok {
			unknown = append(unknown, m)
		}
	}
	return unknown
}

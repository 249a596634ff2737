package harness

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParamArity is returned when a parametrize row does not match its argument names
var ErrParamArity = errors.New("parametrize row does not match argument names")

// Table is an ordered parametrization table
type Table struct {
	Names []string
	Rows  [][]any
}

// Parametrize builds a Table from a comma separated list of argument names and rows of
// literal values. Rows are validated when the case is collected.
func Parametrize(names string, rows ...[]any) *Table {
	var argNames []string
	for _, n := range strings.Split(names, ",") {
		if n = strings.TrimSpace(n); n != "" {
			argNames = append(argNames, n)
		}
	}
	return &Table{Names: argNames, Rows: rows}
}

// Validate checks every row has one value per argument name
func (t *Table) Validate() error {
	if len(t.Names) == 0 {
		return fmt.Errorf("%w: no argument names", ErrParamArity)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Names) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrParamArity, i, len(row), len(t.Names))
		}
	}
	return nil
}

// Params are the argument values for one parametrized invocation
type Params struct {
	ID     string
	values map[string]any
}

// Expand returns one Params per row, in row order
func (t *Table) Expand() ([]Params, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	out := make([]Params, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make(map[string]any, len(row))
		ids := make([]string, len(row))
		for i, v := range row {
			values[t.Names[i]] = v
			ids[i] = fmt.Sprint(v)
		}
		out = append(out, Params{ID: strings.Join(ids, "-"), values: values})
	}
	return out, nil
}

// Get returns the value bound to name
func (p Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

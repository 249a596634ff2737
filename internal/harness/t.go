package harness

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// failNow and skipNow unwind a case body and are recovered by Invoke
type failNow struct{}
type skipNow struct{}

// T is the handle passed to a case body
type T struct {
	ctx      context.Context
	id       string
	params   Params
	fixtures *Values

	mu         sync.Mutex
	failed     bool
	skipped    bool
	skipReason string
	errors     []string
	logs       []string
}

// NewT creates the handle for one case invocation
func NewT(ctx context.Context, id string, params Params, fixtures *Values) *T {
	return &T{ctx: ctx, id: id, params: params, fixtures: fixtures}
}

// Context is cancelled when the run is interrupted
func (t *T) Context() context.Context { return t.ctx }

// ID returns the case id, e.g. "test_square::test_multiple_square_areas[4-16]"
func (t *T) ID() string { return t.id }

// Param returns a parametrized argument
func (t *T) Param(name string) (any, bool) { return t.params.Get(name) }

// Fixture returns a resolved fixture value
func (t *T) Fixture(name string) (any, bool) { return t.fixtures.Get(name) }

// Errorf records a failure and continues
func (t *T) Errorf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = true
	t.errors = append(t.errors, fmt.Sprintf(format, args...))
}

// Fatalf records a failure and stops the case
func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)
	panic(failNow{})
}

// Skipf marks the case skipped and stops it
func (t *T) Skipf(format string, args ...any) {
	t.mu.Lock()
	t.skipped = true
	t.skipReason = fmt.Sprintf(format, args...)
	t.mu.Unlock()
	panic(skipNow{})
}

// Logf records a message shown with the case report
func (t *T) Logf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = append(t.logs, fmt.Sprintf(format, args...))
}

// Failed reports whether the case has failed
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Skipped reports whether the case skipped itself, and why
func (t *T) Skipped() (bool, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.skipped, t.skipReason
}

// Errors returns the recorded failure messages
func (t *T) Errors() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.errors...)
}

// Logs returns the recorded log messages
func (t *T) Logs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.logs...)
}

// Panic describes a panic that escaped a case body
type Panic struct {
	Value any
	Stack string
}

func (p *Panic) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Invoke runs body against t. Fatalf and Skipf are absorbed; any other panic, such as a
// runtime error, is returned.
func Invoke(t *T, body func(*T)) (p *Panic) {
	defer func() {
		r := recover()
		switch r.(type) {
		case nil, failNow, skipNow:
			return
		}
		p = &Panic{Value: r, Stack: string(debug.Stack())}
	}()

	body(t)
	return nil
}

// ParamOf returns a parametrized argument of type V, failing the case if it is missing or
// has another type.
func ParamOf[V any](t *T, name string) V {
	raw, ok := t.Param(name)
	if !ok {
		t.Fatalf("no parameter %q", name)
	}
	v, ok := raw.(V)
	if !ok {
		t.Fatalf("parameter %q is %T, not %T", name, raw, v)
	}
	return v
}

// FixtureOf returns a fixture value of type V, failing the case if it is missing or has
// another type.
func FixtureOf[V any](t *T, name string) V {
	raw, ok := t.Fixture(name)
	if !ok {
		t.Fatalf("fixture %q not requested", name)
	}
	v, ok := raw.(V)
	if !ok {
		t.Fatalf("fixture %q is %T, not %T", name, raw, v)
	}
	return v
}

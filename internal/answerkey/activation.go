package answerkey

import (
	"fmt"
	"sort"
	"sync"
)

// Activation maps a decoded input to 0 or 1.
type Activation func(x int64) int

// BinaryStep is f(x) = 1 if x >= 0, else 0.
func BinaryStep(x int64) int {
	if x >= 0 {
		return 1
	}
	return 0
}

// StrictStep is f(x) = 1 if x > 0, else 0.
func StrictStep(x int64) int {
	if x > 0 {
		return 1
	}
	return 0
}

// Registry maps function names to activations.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Activation
}

// NewRegistry returns a registry preloaded with the built-in step functions.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Activation)}
	r.funcs["bstep"] = BinaryStep
	r.funcs["bstep-strict"] = StrictStep
	return r
}

// Register adds fn under name. Names are unique.
func (r *Registry) Register(name string, fn Activation) error {
	if name == "" || fn == nil {
		return fmt.Errorf("activation needs a name and a function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("activation %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Lookup returns the activation registered under name.
func (r *Registry) Lookup(name string) (Activation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("unknown activation %q (registered: %v)", name, r.namesLocked())
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate applies fn to every value and formats each result at width.
func Evaluate(values []int64, fn Activation, width int) []string {
	answers := make([]string, len(values))
	for i, v := range values {
		answers[i] = Format(fn(v), width)
	}
	return answers
}

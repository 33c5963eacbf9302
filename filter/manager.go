package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/edinet/edinet"
)

// Manager holds named filters, such as the presets from the config file
type Manager struct {
	compiler  Compiler
	evaluator Evaluator
	filters   map[string]CompiledFilter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator Evaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler:  NewExprCompiler(WithCache(100)),
		evaluator: NewConcurrentEvaluator(),
		filters:   make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters compiles and registers every filter, or none of them if
// any fails to compile
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for name, expression := range filters {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve picks the filter for a command: an explicit expression wins over
// a preset name. Both empty means no filtering (nil filter).
func (m *Manager) Resolve(expression, preset string) (CompiledFilter, error) {
	if expression != "" {
		return m.compiler.Compile(expression)
	}
	if preset == "" {
		return nil, nil
	}
	filter, ok := m.GetFilter(preset)
	if !ok {
		return nil, fmt.Errorf("preset '%s' not found in config", preset)
	}
	return filter, nil
}

// Apply returns the documents matching filter; a nil filter matches all
func (m *Manager) Apply(ctx context.Context, filter CompiledFilter, docs []edinet.Document) ([]edinet.Document, error) {
	if filter == nil {
		return docs, nil
	}
	return m.evaluator.Evaluate(ctx, filter, docs)
}

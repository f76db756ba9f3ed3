package strategy

import (
	"fmt"
	"sort"
	"strings"
)

// Factory builds a strategy instance.
type Factory func(opts Options) Strategy

var registry = map[string]Factory{
	NameAll:         func(o Options) Strategy { return NewAll(o) },
	NameUniform:     func(o Options) Strategy { return NewUniform(o) },
	NameFixedRandom: func(o Options) Strategy { return NewFixedRandom(o) },
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a strategy factory by name, ignoring case.
func Lookup(name string) (Factory, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
	return factory, nil
}

// New builds the named strategy.
func New(name string, opts Options) (Strategy, error) {
	factory, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(opts), nil
}

// RequiresFPS reports whether the named strategy needs an fps value.
// Only the all-frames strategy works without one.
func RequiresFPS(name string) bool {
	return strings.ToLower(strings.TrimSpace(name)) != NameAll
}

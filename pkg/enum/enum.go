package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[reflect.Type]any{}
)

type names[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

// New registers value under name and returns value, so enums can be declared
// as package level vars.
func New[T comparable](value T, name string) T {
	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(value)
	if _, ok := registry[t]; !ok {
		registry[t] = names[T]{toEnum: map[string]T{}, toString: map[T]string{}}
	}

	n := registry[t].(names[T])
	n.toEnum[name] = value
	n.toString[value] = name
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	mu.RLock()
	defer mu.RUnlock()

	var defaultT T
	n, ok := registry[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	value, ok := n.(names[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %q in enum %T", s, defaultT)
	}

	return value, nil
}

// ToString returns "" for unregistered values.
func ToString[T comparable](value T) string {
	mu.RLock()
	defer mu.RUnlock()

	n, ok := registry[reflect.TypeOf(value)]
	if !ok {
		return ""
	}

	return n.(names[T]).toString[value]
}

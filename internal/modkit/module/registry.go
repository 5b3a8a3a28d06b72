package module

import "sync"

// registry maps module names to their port sets. It exists so the binary's
// bootstrap can wire modules together by name; after bootstrap it is
// read-only in practice
type registry struct {
	mu sync.RWMutex
	m  map[string]any
}

var global = &registry{m: map[string]any{}}

// Register publishes the port set of a module under its name.
// Registering the same name twice replaces the earlier set
func Register(name string, ports any) {
	global.mu.Lock()
	global.m[name] = ports
	global.mu.Unlock()
}

// PortsAs looks up a registered port set and asserts it to T. The second
// return is false when the name is unknown or the stored set is not a T
func PortsAs[T any](name string) (T, bool) {
	global.mu.RLock()
	v, ok := global.m[name]
	global.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry; tests use it to isolate wiring scenarios
func Reset() {
	global.mu.Lock()
	global.m = map[string]any{}
	global.mu.Unlock()
}

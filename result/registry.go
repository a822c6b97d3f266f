package result

import (
	"sync"
	"sync/atomic"
)

// registry is a copy-on-write map. Readers never lock; writers serialize on
// lock and publish a fresh copy.
type registry[K comparable, V any] struct {
	readonly atomic.Value // map[K]V
	lock     sync.Mutex
}

func (r *registry[K, V]) Store(key K, value V) {
	r.lock.Lock()
	defer r.lock.Unlock()

	old, _ := r.readonly.Load().(map[K]V)
	m := make(map[K]V, len(old)+1)
	for k, v := range old {
		m[k] = v
	}
	m[key] = value
	r.readonly.Store(m)
}

func (r *registry[K, V]) Load(key K) (V, bool) {
	m, _ := r.readonly.Load().(map[K]V)
	value, ok := m[key]
	return value, ok
}

func (r *registry[K, V]) Delete(key K) (V, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	old, _ := r.readonly.Load().(map[K]V)
	value, ok := old[key]
	if !ok {
		return value, false
	}
	m := make(map[K]V, len(old))
	for k, v := range old {
		if k != key {
			m[k] = v
		}
	}
	r.readonly.Store(m)
	return value, true
}

func (r *registry[K, V]) Range(fn func(key K, value V)) {
	m, _ := r.readonly.Load().(map[K]V)
	for k, v := range m {
		fn(k, v)
	}
}

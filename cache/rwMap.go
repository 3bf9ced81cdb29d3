package cache

import "sync"

type RWLockMap[Key comparable, Val any] struct {
	entries map[Key]Val
	lock    sync.RWMutex
}

func newRwLockMap[Key comparable, Val any]() RWLockMap[Key, Val] {
	return RWLockMap[Key, Val]{
		entries: make(map[Key]Val),
	}
}

func (m *RWLockMap[Key, Val]) lookup(key Key) (Val, bool) {
	m.lock.RLock()
	result, ok := m.entries[key]
	m.lock.RUnlock()
	return result, ok
}

func (m *RWLockMap[Key, Val]) insert(key Key, val Val) {
	m.lock.Lock()
	m.entries[key] = val
	m.lock.Unlock()
}

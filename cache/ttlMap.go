package cache

import (
	"sync"
	"time"
)

type ttlEntry[Val any] struct {
	val     Val
	expires time.Time
}

// TTLMap is a locked map whose entries each carry their own expiry deadline.
// An expired entry is dropped on lookup, so unrelated entries never get
// invalidated together.
type TTLMap[Key comparable, Val any] struct {
	entries map[Key]ttlEntry[Val]
	lock    sync.Mutex
	ttl     time.Duration
	now     func() time.Time
}

func NewTTLMap[Key comparable, Val any](ttl time.Duration) *TTLMap[Key, Val] {
	return &TTLMap[Key, Val]{
		entries: make(map[Key]ttlEntry[Val]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *TTLMap[Key, Val]) Lookup(key Key) (Val, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		var zero Val
		return zero, false
	}
	if m.now().After(entry.expires) {
		delete(m.entries, key)
		var zero Val
		return zero, false
	}
	return entry.val, true
}

func (m *TTLMap[Key, Val]) Insert(key Key, val Val) {
	m.lock.Lock()
	m.entries[key] = ttlEntry[Val]{val: val, expires: m.now().Add(m.ttl)}
	m.lock.Unlock()
}

func (m *TTLMap[Key, Val]) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.entries)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import (
	"hash/maphash"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// DefaultHashMapWidth is the row width used when NewHashMap is given width <= 0.
const DefaultHashMapWidth = 256

// HashMap is a lock-free, insert-only map with open addressing.
//
// Every key is accessible: Access inserts the key on first use and returns a
// pointer to its value, which stays valid for the lifetime of the map. There
// is no deletion, no rehashing and no resizing of existing slots.
//
// Slots live in an Array whose blocks are one row of width slots each. A key
// starting at column h%width probes the same column in successive rows, so a
// collision chain grows the Array by one row instead of spilling into
// neighbouring columns. Probe length is unbounded.
//
// A slot is empty while its key pointer is nil. Any key value, including the
// zero value of K, is a legal key.
type HashMap[K comparable, V any] struct {
	slots *Array[hashSlot[K, V]]
	hash  func(K) uint64
	width uint64
}

type hashSlot[K comparable, V any] struct {
	key   atomic.Pointer[K] // nil = empty; set once, never changed
	value V
}

// NewHashMap creates a HashMap with the given row width and hash function.
// width <= 0 selects DefaultHashMapWidth. A nil hash selects a randomly seeded
// [maphash.Comparable].
func NewHashMap[K comparable, V any](width int, hash func(K) uint64) *HashMap[K, V] {
	if width <= 0 {
		width = DefaultHashMapWidth
	}
	if hash == nil {
		seed := maphash.MakeSeed()
		hash = func(k K) uint64 { return maphash.Comparable(seed, k) }
	}
	return &HashMap[K, V]{
		slots: NewArray[hashSlot[K, V]](width),
		hash:  hash,
		width: uint64(width),
	}
}

// Access returns a pointer to the value for key, inserting a zero value on
// first access. Concurrent Access calls with equal keys return the same pointer.
func (m *HashMap[K, V]) Access(key K) *V {
	var claim *K
	for pos := m.hash(key) % m.width; ; pos += m.width {
		s := m.slots.Access(int(pos))

		k := s.key.Load()
		if k == nil {
			if claim == nil {
				claim = new(K)
				*claim = key
			}
			if s.key.CompareAndSwap(nil, claim) {
				return &s.value
			}
			// Lost the slot; the winner may have inserted the same key.
			k = s.key.Load()
		}
		if *k == key {
			return &s.value
		}
	}
}

// Load returns a pointer to the value for key if key has been inserted.
// Load never inserts and never grows the map.
func (m *HashMap[K, V]) Load(key K) (*V, bool) {
	for pos := m.hash(key) % m.width; ; pos += m.width {
		s, ok := m.slots.Lookup(int(pos))
		if !ok {
			return nil, false
		}
		k := s.key.Load()
		if k == nil {
			return nil, false
		}
		if *k == key {
			return &s.value, true
		}
	}
}

// Range calls f for every inserted key in slot order until f returns false.
// Keys inserted concurrently with Range may or may not be visited.
func (m *HashMap[K, V]) Range(f func(key K, value *V) bool) {
	for pos := 0; ; pos++ {
		s, ok := m.slots.Lookup(pos)
		if !ok {
			return
		}
		if k := s.key.Load(); k != nil && !f(*k, &s.value) {
			return
		}
	}
}

// Width returns the row width.
func (m *HashMap[K, V]) Width() int {
	return int(m.width)
}

// HashString hashes s with xxHash64.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashInteger hashes an integer key with the splitmix64 finalizer, spreading
// sequential keys across columns.
func HashInteger[K ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](k K) uint64 {
	x := uint64(k)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

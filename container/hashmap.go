package container

// DefaultBucketCapacity is the bucket count used when none is given.
const DefaultBucketCapacity = 65536

// knuthMultiplier is the 32-bit multiplicative hashing constant.
const knuthMultiplier uint32 = 2654435761

// entry is one key/value pair on a bucket chain.
type entry[V comparable] struct {
	key   uint32
	value V
}

// Map is a fixed-capacity hash map keyed by uint32 with open chaining.
// Each bucket is an OrderedList of entries; a parallel ordered list of
// live keys gives deterministic, insertion-ordered iteration. Capacity
// is fixed for the map's lifetime: there is no resizing or rehashing.
type Map[V comparable] struct {
	buckets []OrderedList[entry[V]]
	keys    OrderedList[uint32]
	count   int
}

// NewMap allocates a map with the given bucket capacity; a
// non-positive capacity falls back to DefaultBucketCapacity.
func NewMap[V comparable](bucketCapacity int) *Map[V] {
	if bucketCapacity <= 0 {
		bucketCapacity = DefaultBucketCapacity
	}
	return &Map[V]{buckets: make([]OrderedList[entry[V]], bucketCapacity)}
}

// hash maps key to a bucket index with the multiplicative hash,
// wrapping in uint32 before the modulus.
func (m *Map[V]) hash(key uint32) uint32 {
	return (key * knuthMultiplier) % uint32(len(m.buckets))
}

// Insert stores value under key with upsert semantics: a duplicate key
// overwrites the stored value in place and leaves Len and the key list
// unchanged; a fresh key appends to its chain and to the key list.
func (m *Map[V]) Insert(key uint32, value V) {
	b := &m.buckets[m.hash(key)]
	for n := b.head; n != nil; n = n.next {
		if n.value.key == key {
			n.value.value = value
			return
		}
	}
	b.Append(entry[V]{key: key, value: value})
	m.keys.Append(key)
	m.count++
}

// Remove unlinks the entry for key from its chain and from the key
// list. Returns ErrKeyNotFound if absent.
func (m *Map[V]) Remove(key uint32) error {
	b := &m.buckets[m.hash(key)]
	for n := b.head; n != nil; n = n.next {
		if n.value.key == key {
			b.unlink(n)
			// Chain and key list share membership, so the key is
			// always present here.
			_ = m.keys.RemoveFirst(key)
			m.count--
			return nil
		}
	}
	return ErrKeyNotFound
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key uint32) (V, error) {
	b := &m.buckets[m.hash(key)]
	for n := b.head; n != nil; n = n.next {
		if n.value.key == key {
			return n.value.value, nil
		}
	}
	var zero V
	return zero, ErrKeyNotFound
}

// Ref returns a pointer to the stored value for in-place mutation.
// The pointer is invalidated by removing the key.
func (m *Map[V]) Ref(key uint32) (*V, error) {
	b := &m.buckets[m.hash(key)]
	for n := b.head; n != nil; n = n.next {
		if n.value.key == key {
			return &n.value.value, nil
		}
	}
	return nil, ErrKeyNotFound
}

// Contains reports whether key is present.
func (m *Map[V]) Contains(key uint32) bool {
	b := &m.buckets[m.hash(key)]
	for n := b.head; n != nil; n = n.next {
		if n.value.key == key {
			return true
		}
	}
	return false
}

// Keys returns the live keys in insertion order. The list is a view
// owned by the map; callers must not mutate it.
func (m *Map[V]) Keys() *OrderedList[uint32] {
	return &m.keys
}

// Len returns the number of live entries.
func (m *Map[V]) Len() int { return m.count }

// ChainLen returns the chain length of the bucket key hashes into.
// Exposed for distribution checks.
func (m *Map[V]) ChainLen(key uint32) int {
	return m.buckets[m.hash(key)].Len()
}

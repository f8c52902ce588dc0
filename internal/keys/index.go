package keys

// Constants for index sizing.
const (
	defaultIndexCapacity = 16
	indexLoadFactor      = 0.75 // load factor before the bucket array grows
	indexGrowthFactor    = 2    // growth factor for bucket array resize
)

// Index maps tuple keys to the values stored under them. Buckets are chosen
// by the xxhash digest of the key; entries keep first-insertion order so that
// grouping can emit keys in first-occurrence order.
type Index[V any] struct {
	buckets  [][]int // positions into entries
	entries  []indexEntry[V]
	capacity int
}

type indexEntry[V any] struct {
	key    Tuple
	hash   uint64
	values []V
}

// NewIndex creates an index sized for roughly estimatedKeys distinct keys.
func NewIndex[V any](estimatedKeys int) *Index[V] {
	capacity := nextPowerOfTwo(max(estimatedKeys, defaultIndexCapacity))
	return &Index[V]{
		buckets:  make([][]int, capacity),
		capacity: capacity,
	}
}

// Put appends value under key.
func (ix *Index[V]) Put(key Tuple, value V) {
	hash := key.Hash()
	if pos, ok := ix.find(key, hash); ok {
		ix.entries[pos].values = append(ix.entries[pos].values, value)
		return
	}

	ix.entries = append(ix.entries, indexEntry[V]{key: key, hash: hash, values: []V{value}})
	bucket := ix.bucketOf(hash)
	ix.buckets[bucket] = append(ix.buckets[bucket], len(ix.entries)-1)

	if float64(len(ix.entries)) > float64(ix.capacity)*indexLoadFactor {
		ix.resize()
	}
}

// Get returns the values stored under key in insertion order.
func (ix *Index[V]) Get(key Tuple) ([]V, bool) {
	pos, ok := ix.find(key, key.Hash())
	if !ok {
		return nil, false
	}
	return ix.entries[pos].values, true
}

// Len returns the number of distinct keys.
func (ix *Index[V]) Len() int {
	return len(ix.entries)
}

// Each calls fn for every key in first-insertion order until fn returns false.
func (ix *Index[V]) Each(fn func(key Tuple, values []V) bool) {
	for i := range ix.entries {
		if !fn(ix.entries[i].key, ix.entries[i].values) {
			return
		}
	}
}

func (ix *Index[V]) find(key Tuple, hash uint64) (int, bool) {
	for _, pos := range ix.buckets[ix.bucketOf(hash)] {
		e := &ix.entries[pos]
		if e.hash == hash && e.key.Equal(key) {
			return pos, true
		}
	}
	return 0, false
}

func (ix *Index[V]) bucketOf(hash uint64) int {
	//nolint:gosec // capacity is a positive power of two
	return int(hash & uint64(ix.capacity-1))
}

// resize doubles the bucket array and rehashes all entries.
func (ix *Index[V]) resize() {
	ix.capacity *= indexGrowthFactor
	ix.buckets = make([][]int, ix.capacity)
	for pos := range ix.entries {
		bucket := ix.bucketOf(ix.entries[pos].hash)
		ix.buckets[bucket] = append(ix.buckets[bucket], pos)
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

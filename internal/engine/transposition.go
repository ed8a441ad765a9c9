package engine

// BucketSize is the number of entries sharing one table index.
const BucketSize = 4

// Table bit bounds. 2^MaxTableBits buckets is already several gigabytes for
// most value types.
const (
	MinTableBits     = 0
	MaxTableBits     = 30
	DefaultTableBits = 20
)

// tableEntry is one slot of a bucket. An entry is live only while its
// generation matches the table's.
type tableEntry[V any] struct {
	key   uint64 // Full 64-bit hash for verification
	gen   uint32
	value V
}

type bucket[V any] [BucketSize]tableEntry[V]

// Table is a fixed-capacity hash map from 64-bit position hashes to values.
// It holds 2^bits buckets of BucketSize entries; the bucket is chosen by the
// low bits of the hash and entries inside it match on the full hash. Inserting
// into a full bucket evicts its oldest entry.
//
// Table is not safe for concurrent use.
type Table[V any] struct {
	buckets []bucket[V]
	mask    uint64
	gen     uint32

	// Statistics
	probes uint64
	hits   uint64
}

// NewTable creates a table with 2^bits buckets. bits is clamped to
// [MinTableBits, MaxTableBits].
func NewTable[V any](bits int) *Table[V] {
	bits = clamp(bits, MinTableBits, MaxTableBits)
	n := uint64(1) << bits
	return &Table[V]{
		buckets: make([]bucket[V], n),
		mask:    n - 1,
		gen:     1,
	}
}

// Get returns the value stored for hash.
func (t *Table[V]) Get(hash uint64) (V, bool) {
	t.probes++

	b := &t.buckets[hash&t.mask]
	for i := range b {
		if b[i].gen == t.gen && b[i].key == hash {
			t.hits++
			return b[i].value, true
		}
	}

	var zero V
	return zero, false
}

// Set stores v for hash. An existing entry for hash is updated in place;
// otherwise the new entry becomes the newest in its bucket, pushing the
// oldest out if the bucket is full.
func (t *Table[V]) Set(hash uint64, v V) {
	b := &t.buckets[hash&t.mask]

	free := BucketSize - 1
	for i := range b {
		if b[i].gen != t.gen {
			free = i
			break
		}
		if b[i].key == hash {
			b[i].value = v
			return
		}
	}

	// Shift the live prefix down one slot, dropping the oldest when full.
	copy(b[1:free+1], b[:free])
	b[0] = tableEntry[V]{key: hash, gen: t.gen, value: v}
}

// Clear empties the table in constant time by advancing the generation.
// When the generation counter wraps, the storage is wiped once.
func (t *Table[V]) Clear() {
	t.gen++
	if t.gen == 0 {
		clear(t.buckets)
		t.gen = 1
	}
	t.probes = 0
	t.hits = 0
}

// Capacity returns the maximum number of entries the table can hold.
func (t *Table[V]) Capacity() int {
	return len(t.buckets) * BucketSize
}

// Len counts the live entries. It walks the whole table.
func (t *Table[V]) Len() int {
	n := 0
	for i := range t.buckets {
		for j := range t.buckets[i] {
			if t.buckets[i][j].gen == t.gen {
				n++
			}
		}
	}
	return n
}

// Probes returns the number of Get calls since the last Clear.
func (t *Table[V]) Probes() uint64 {
	return t.probes
}

// Hits returns the number of successful Get calls since the last Clear.
func (t *Table[V]) Hits() uint64 {
	return t.hits
}

// HitRate returns the cache hit rate as a percentage.
func (t *Table[V]) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}

// AdjustScoreToTT converts a mate score measured from the root into one
// measured from the node at ply, for storage in the table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

// AdjustScoreFromTT reverses AdjustScoreToTT for a node at ply.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

package noise

import "github.com/segmentio/fasthash/fnv1a"

// Seed derives the seed of a named noise channel from a world seed, so that
// the terrain and vegetation fields of one world never share a permutation
// table.
func Seed(name string, seed int64) int64 {
	return int64(fnv1a.AddUint64(fnv1a.HashString64(name), uint64(seed)))
}

package rules

// BloomFilter is the minimal interface the store needs from the domain-rule
// prefilter. A filter is built once per snapshot and read concurrently.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// BloomFactory creates filters sized for dataset capacity and target
// false-positive rate.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// HostCache memoizes the structural "might any domain rule match this host"
// answer per canonical host, with basic metrics. Purged on snapshot replace.
type HostCache interface {
	Get(host string) (maybe bool, ok bool)
	Put(host string, maybe bool)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

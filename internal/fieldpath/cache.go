package fieldpath

// Cache memoizes Parse by raw path text. It is not safe for concurrent use;
// one cache belongs to one processing pass.
type Cache struct {
	parsed map[string]cacheEntry
}

type cacheEntry struct {
	path Path
	err  error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{parsed: make(map[string]cacheEntry)}
}

// Parse returns the cached result for raw, parsing it on first use.
// Syntax errors are cached too.
func (c *Cache) Parse(raw string) (Path, error) {
	if e, ok := c.parsed[raw]; ok {
		return e.path, e.err
	}

	p, err := Parse(raw)
	c.parsed[raw] = cacheEntry{path: p, err: err}

	return p, err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.parsed)
}

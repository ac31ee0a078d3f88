package domain

import "sync"

// BrokenImport is one non-fatal failure recorded during an import run.
type BrokenImport struct {
	Error  string
	Source string
	Email  string
	ATS    string
}

// Collector accumulates BrokenImport entries across one run. It never fails:
// callers append and move on. Safe for concurrent use; the same tuple is
// recorded at most once per run.
type Collector struct {
	mu   sync.Mutex
	seen map[BrokenImport]struct{}
	list []BrokenImport
}

func NewCollector() *Collector {
	return &Collector{seen: make(map[BrokenImport]struct{})}
}

func (c *Collector) Add(bi BrokenImport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[bi]; dup {
		return
	}
	c.seen[bi] = struct{}{}
	c.list = append(c.list, bi)
}

func (c *Collector) Items() []BrokenImport {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]BrokenImport, len(c.list))
	copy(out, c.list)
	return out
}

func (c *Collector) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.list) == 0
}

package profiler

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// Scope aggregates every timed run of one named scope.
type Scope struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

// Mean returns Total/Count, zero for an empty scope.
func (s Scope) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

var (
	mu      sync.Mutex
	enabled = true
	scopes  = map[string]*Scope{}
)

// Enable switches collection on or off. Start is a no-op while off.
func Enable(on bool) {
	mu.Lock()
	enabled = on
	mu.Unlock()
}

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	mu.Lock()
	on := enabled
	mu.Unlock()
	if !on {
		return func() {}
	}
	begin := time.Now()
	return func() {
		d := time.Since(begin)
		mu.Lock()
		defer mu.Unlock()
		s, ok := scopes[name]
		if !ok {
			s = &Scope{Name: name}
			scopes[name] = s
		}
		s.Count++
		s.Total += d
		if d > s.Max {
			s.Max = d
		}
	}
}

// Snapshot returns all scopes sorted by name.
func Snapshot() []Scope {
	mu.Lock()
	out := make([]Scope, 0, len(scopes))
	for _, s := range scopes {
		out = append(out, *s)
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset drops every collected scope.
func Reset() {
	mu.Lock()
	scopes = map[string]*Scope{}
	mu.Unlock()
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func NumGoroutine() int { return runtime.NumGoroutine() }

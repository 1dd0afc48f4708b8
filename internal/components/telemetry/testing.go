package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call to one of the methods of API.
type Report struct {
	ID     string
	Params []any
}

// TestAPI records every report it receives so tests can assert on them.
type TestAPI struct {
	lock     sync.Mutex
	broken   []Report
	warnings []Report
	debug    []Report
	counts   map[string]int64
}

func NewTestAPI() *TestAPI {
	return &TestAPI{counts: map[string]int64{}}
}

func (t *TestAPI) ReportBroken(id string, params ...any) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.broken = append(t.broken, Report{ID: id, Params: params})
}

func (t *TestAPI) ReportWarning(id string, params ...any) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.warnings = append(t.warnings, Report{ID: id, Params: params})
}

func (t *TestAPI) ReportDebug(msg string, params ...any) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.debug = append(t.debug, Report{ID: msg, Params: params})
}

func (t *TestAPI) ReportCount(id string, count int64) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.counts[id] = count
}

func (t *TestAPI) Broken() []Report {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]Report(nil), t.broken...)
}

func (t *TestAPI) Warnings() []Report {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]Report(nil), t.warnings...)
}

// Count returns the last count reported under id and whether one was reported at all.
func (t *TestAPI) Count(id string) (int64, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	n, ok := t.counts[id]
	return n, ok
}

// HasBroken checks if a broken report has an id ending with suffix, scoped
// ids carry a namespace prefix which tests usually don't care about.
func (t *TestAPI) HasBroken(suffix string) bool {
	for _, r := range t.Broken() {
		if strings.HasSuffix(r.ID, suffix) {
			return true
		}
	}
	return false
}

package priority

import "mediarm/internal/registry"

// Fake is a map-backed Oracle for tests, mirroring the teacher's
// stub-function testing style (internal/app/add_test.go's stubDaemon):
// tests build the exact priority table a scenario needs instead of relying
// on the real process table.
type Fake map[registry.PID]int32

// GetPriority implements Oracle. A pid absent from the map is unavailable,
// modeling "priority momentarily unreadable" without a separate sentinel.
func (f Fake) GetPriority(pid registry.PID) (int32, bool) {
	p, ok := f[pid]
	return p, ok
}

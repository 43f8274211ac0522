// Package priority is the external Process-Info Oracle the reclaim engine
// consults for scheduling priority. The engine treats it as a pure query
// and tolerates transient failures: a pid whose priority can't be read is
// simply invisible to victim selection.
package priority

import "mediarm/internal/registry"

// Oracle answers priority questions. Lower returned value means higher
// scheduling priority (priority 10 beats priority 20), mirroring nice(2)
// semantics.
type Oracle interface {
	// GetPriority returns the pid's priority and true, or (0, false) if it
	// could not be determined (process gone, permission denied, ...).
	GetPriority(pid registry.PID) (int32, bool)
}

package priority

import (
	"syscall"

	"mediarm/internal/registry"
)

// SyscallOracle reads scheduling priority straight from the kernel via
// getpriority(2): a thin, best-effort wrapper that turns "the syscall
// failed" into "priority unknown" rather than propagating an error the
// reclaim engine has no use for.
type SyscallOracle struct{}

// GetPriority implements Oracle.
func (SyscallOracle) GetPriority(pid registry.PID) (int32, bool) {
	if pid <= 0 {
		return 0, false
	}
	// Getpriority(2) overloads its return value with errno on failure, so
	// Go's wrapper clears errno first and treats a non-nil error as
	// "unavailable" — matches ESRCH for a process that exited between
	// registration and reclaim.
	prio, err := syscall.Getpriority(syscall.PRIO_PROCESS, int(pid))
	if err != nil {
		return 0, false
	}
	// The raw syscall (not glibc's getpriority(3)) returns 20-nice to keep
	// the return value non-negative; undo that so callers see plain
	// nice(2) values, where lower is higher priority.
	return int32(20 - prio), true
}

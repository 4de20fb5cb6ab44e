// Package host reports the processors a computation can run on.
package host

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Info describes the machine the benchmark runs on.
type Info struct {
	Model     string
	Physical  int
	Logical   int
	Available int
}

// Available returns the number of processors this process may be scheduled
// on. It is always at least one.
func Available() int {
	if n := available(); n > 0 {
		return n
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// Describe collects CPU model and core counts. Fields that cannot be
// determined are left zero or empty; Available is always set.
func Describe() Info {
	info := Info{Available: Available()}
	if stats, err := cpu.Info(); err == nil && len(stats) > 0 {
		info.Model = stats[0].ModelName
	}
	if n, err := cpu.Counts(false); err == nil {
		info.Physical = n
	}
	if n, err := cpu.Counts(true); err == nil {
		info.Logical = n
	}
	return info
}

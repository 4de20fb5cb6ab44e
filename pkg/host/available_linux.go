//go:build linux

package host

import "golang.org/x/sys/unix"

// available counts the CPUs in the calling thread's affinity mask, which
// honors taskset and cgroup cpusets.
func available() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0
	}
	return set.Count()
}

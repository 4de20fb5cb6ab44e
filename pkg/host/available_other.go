//go:build !linux

package host

import "runtime"

func available() int {
	return runtime.NumCPU()
}

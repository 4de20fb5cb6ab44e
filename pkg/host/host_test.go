package host

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableIsPositive(t *testing.T) {
	n := Available()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, runtime.NumCPU())
}

func TestDescribe(t *testing.T) {
	info := Describe()
	assert.Equal(t, Available(), info.Available)
	assert.GreaterOrEqual(t, info.Logical, 0)
	assert.GreaterOrEqual(t, info.Physical, 0)
}

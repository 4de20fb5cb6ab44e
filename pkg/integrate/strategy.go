package integrate

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how Parallel splits the samples and merges partial sums.
type Strategy int

const (
	// StrategyPool runs contiguous ranges on a workerpool and folds the
	// ordered partials.
	StrategyPool Strategy = iota
	// StrategyErrgroup runs contiguous ranges on an errgroup; each task
	// writes its own slot.
	StrategyErrgroup
	// StrategyMutex gives each worker one range and merges its partial
	// under a lock, once per worker.
	StrategyMutex
	// StrategyInterleaved assigns index i to worker i mod W.
	StrategyInterleaved
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown strategy")

var strategyNames = map[Strategy]string{
	StrategyPool:        "pool",
	StrategyErrgroup:    "errgroup",
	StrategyMutex:       "mutex",
	StrategyInterleaved: "interleaved",
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyPool, StrategyErrgroup, StrategyMutex, StrategyInterleaved}
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Strategies() {
		if strategyNames[s] == want {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

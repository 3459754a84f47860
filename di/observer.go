package di

import (
	"reflect"
	"time"
)

// Strategy names the rule that produced a value.
type Strategy uint8

const (
	StrategyNone Strategy = iota
	StrategyOverride
	StrategyRegistry
	StrategyConstructor
	StrategySequence
	StrategyMap
	StrategySynthesis
)

var strategyNames = [...]string{
	StrategyNone:        "none",
	StrategyOverride:    "override",
	StrategyRegistry:    "registry",
	StrategyConstructor: "constructor",
	StrategySequence:    "sequence",
	StrategyMap:         "map",
	StrategySynthesis:   "synthesis",
}

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return "unknown"
}

// Observer receives resolution events. Implementations must be cheap; they run
// inline on every node of the resolution graph.
type Observer interface {
	// ObserveResolution is called once per successfully resolved node.
	ObserveResolution(d Descriptor, s Strategy)
	// ObserveRequest is called once per top-level request, err is nil on success.
	ObserveRequest(root reflect.Type, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveResolution(Descriptor, Strategy) {}
func (nopObserver) ObserveRequest(reflect.Type, time.Duration, error) {}

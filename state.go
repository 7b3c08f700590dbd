// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// NetState is the state of a single lane in a network.
//
// The zero value is Floating.
//
type NetState uint8

// Lane states.
//
const (
	Floating NetState = iota // undriven lane, identity element of Combine
	Low
	High
	ShortCircuit // conflicting drivers, see Policy
)

var stateNames = [...]string{"FLOATING", "LOW", "HIGH", "SHORT_CIRCUIT"}

func (s NetState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "NetState(" + strconv.Itoa(int(s)) + ")"
}

// IsDefined returns true if s is either High or Low.
//
func (s NetState) IsDefined() bool { return s == High || s == Low }

// IsError returns true if s is Floating or ShortCircuit.
//
func (s NetState) IsError() bool { return !s.IsDefined() }

// Logic returns the boolean value of s. Floating and ShortCircuit lanes have no
// defined value and draw a fresh random bit from src on every call.
//
func (s NetState) Logic(src Source) bool {
	switch s {
	case High:
		return true
	case Low:
		return false
	}
	return src.Bool()
}

// StateOf returns High for true and Low for false.
//
func StateOf(v bool) NetState {
	if v {
		return High
	}
	return Low
}

// Policy selects how Combine resolves two simultaneous, disagreeing drivers.
//
type Policy uint8

// Conflict resolution policies.
//
const (
	// HighLowShort turns any disagreement into ShortCircuit.
	HighLowShort Policy = iota
	// PreferHigh resolves disagreements and short circuits to High.
	PreferHigh
	// PreferLow resolves disagreements and short circuits to Low.
	PreferLow
)

var policyNames = [...]string{"high_low_short", "prefer_high", "prefer_low"}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "Policy(" + strconv.Itoa(int(p)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
//
func (p Policy) MarshalText() ([]byte, error) {
	if int(p) >= len(policyNames) {
		return nil, errors.Errorf("invalid policy %d", p)
	}
	return []byte(policyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the policy
// names in any case, with either '_' or '-' as separator.
//
func (p *Policy) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.ReplaceAll(string(text), "-", "_"))
	for i, n := range policyNames {
		if n == name {
			*p = Policy(i)
			return nil
		}
	}
	return errors.Errorf("unknown short circuit policy %q", text)
}

// Combine folds the state b driven onto a lane into the state a already
// present on that lane. Floating is the identity element and the operation is
// commutative for every policy.
//
func Combine(a, b NetState, p Policy) NetState {
	if a == Floating {
		return b
	}
	if b == Floating {
		return a
	}
	switch p {
	case PreferHigh:
		if a == Low && b == Low {
			return Low
		}
		return High
	case PreferLow:
		if a == High && b == High {
			return High
		}
		return Low
	default:
		if a != b || a == ShortCircuit {
			return ShortCircuit
		}
		return a
	}
}

// A Source provides the noise read on undefined lanes.
//
type Source interface {
	Bool() bool
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a Source seeded with the given value. It is safe for
// concurrent use.
//
func NewSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Bool() bool {
	s.mu.Lock()
	v := s.r.Int63()&1 == 1
	s.mu.Unlock()
	return v
}

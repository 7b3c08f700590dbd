// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package nettest provides utility functions for testing circuits.
//
package nettest

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/netlib"
)

// Const is a netsim.Source that always returns the same value.
//
type Const bool

// Bool implements netsim.Source.
//
func (c Const) Bool() bool { return bool(c) }

// Seq is a netsim.Source that cycles through a fixed sequence of values and
// counts how many values were drawn.
//
type Seq struct {
	mu    sync.Mutex
	vs    []bool
	reads int
}

// NewSeq returns a new Seq returning vs in order, then starting over.
//
func NewSeq(vs ...bool) *Seq {
	if len(vs) == 0 {
		vs = []bool{false}
	}
	return &Seq{vs: vs}
}

// Bool implements netsim.Source.
//
func (s *Seq) Bool() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vs[s.reads%len(s.vs)]
	s.reads++
	return v
}

// Reads returns the number of values drawn so far.
//
func (s *Seq) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// NewGateFn builds a gate with the given number of inputs.
//
type NewGateFn func(id int, pos netsim.Point, inputs int) *netlib.Gate

// Circuit returns a new circuit using the HighLowShort policy and a Const(false)
// noise source.
//
func Circuit() *netsim.Circuit {
	return netsim.NewCircuit(&netsim.Options{Source: Const(false)})
}

// Run runs n ticks.
//
func Run(c *netsim.Circuit, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// mount adds g to c along with an input for each of its input pins and
// returns the input values.
//
func mount(c *netsim.Circuit, g *netlib.Gate, inputs int) []bool {
	values := make([]bool, inputs)
	for i := 0; i < inputs; i++ {
		v := &values[i]
		in := netlib.NewInput(c.NextFreeID(), g.In(i).Position(), func() netsim.NetState { return netsim.StateOf(*v) })
		c.Add(in)
	}
	c.Add(g)
	return values
}

// TruthTable checks the output of a gate against an expected truth table.
// want[i] is the expected output when input k is set to bit k of i.
//
func TruthTable(t *testing.T, newGate NewGateFn, inputs int, want []bool) {
	t.Helper()
	c := Circuit()
	g := newGate(0, netsim.Pt(10, 0), inputs)
	values := mount(c, g, inputs)
	if n := 1 << uint(inputs); len(want) != n {
		t.Fatalf("%s: truth table has %d entries, need %d", g.Name(), len(want), n)
	}
	for i, w := range want {
		for k := range values {
			values[k] = i&(1<<uint(k)) != 0
		}
		// one tick to drive the inputs, one for the gate.
		Run(c, 2)
		if got := c.NetState(g.Out()); got != netsim.StateOf(w) {
			t.Errorf("%s %s = %v, got %v", g.Name(), fmtInputs(values), netsim.StateOf(w), got)
		}
	}
}

func fmtInputs(values []bool) string {
	var b strings.Builder
	for i, v := range values {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "in%d=%v", i, v)
	}
	return b.String()
}

// CompareGates builds two gates with the same number of inputs and compares
// their outputs when fed the same random inputs.
//
func CompareGates(t *testing.T, inputs int, gate1, gate2 NewGateFn) {
	t.Helper()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	c1, c2 := Circuit(), Circuit()
	g1, g2 := gate1(0, netsim.Pt(10, 0), inputs), gate2(0, netsim.Pt(10, 0), inputs)
	v1, v2 := mount(c1, g1, inputs), mount(c2, g2, inputs)

	iter := 1 << uint(inputs)
	if iter > 4096 {
		iter = 4096
	}
	start := time.Now()
	for i := 0; i < iter; i++ {
		for k := range v1 {
			v1[k] = rnd.Int63()&1 != 0
			v2[k] = v1[k]
		}
		Run(c1, 2)
		Run(c2, 2)
		if o1, o2 := c1.NetState(g1.Out()), c2.NetState(g2.Out()); o1 != o2 {
			t.Fatalf("%s %s = %v, %s = %v", g1.Name(), fmtInputs(v1), o1, g2.Name(), o2)
		}
	}
	t.Logf("%d ticks in %v", c1.Ticks(), time.Since(start))
}

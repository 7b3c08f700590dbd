package netlib_test

import (
	"testing"

	ns "github.com/db47h/netsim"
	nl "github.com/db47h/netsim/netlib"
	"github.com/db47h/netsim/nettest"
)

func TestPin(t *testing.T) {
	w := nl.NewWire(3, ns.Pt(1, 1), ns.Pt(4, 9))
	w2 := nl.NewWire(4, ns.Pt(1, 1), ns.Pt(4, 9))
	if w.B().Position() != ns.Pt(4, 9) {
		t.Errorf("B() at %v, expected (4, 9)", w.B().Position())
	}
	if !w.A().Equal(w.B()) || !w.B().Equal(w.A()) {
		t.Error("wire ends must be equal")
	}
	if w.A().Equal(w2.A()) {
		t.Error("pins of different wires must not be equal")
	}
	l := nl.NewLamp(5, ns.Pt(1, 1))
	if l.In().Equal(w.A()) || w.A().Equal(l.In()) {
		t.Error("unlinked pins must not be equal")
	}
	if s := w.A().String(); s != "WIRE#3.a" {
		t.Errorf("got %q", s)
	}
	w.Move(ns.Pt(0, 0))
	if w.B().Position() != ns.Pt(3, 8) {
		t.Errorf("B() at %v after move, expected (3, 8)", w.B().Position())
	}
	if w.Pin("c") != nil || w.Pin("b") != w.B() {
		t.Error("Pin lookup failed")
	}
}

func TestSwitchLamp(t *testing.T) {
	c := nettest.Circuit()
	sw := nl.NewSwitch(0, ns.Pt(0, 0))
	lamp := nl.NewLamp(1, ns.Pt(0, 0))
	c.Add(sw)
	c.Add(lamp)
	sw.Toggle()
	nettest.Run(c, 2)
	if !lamp.Lit() || !sw.On() {
		t.Fatal("lamp should be lit")
	}
	sw.Toggle()
	nettest.Run(c, 2)
	if lamp.State() != ns.Low {
		t.Fatalf("got %v, expected LOW", lamp.State())
	}
	c.Reset()
	if lamp.State() != ns.Floating {
		t.Fatalf("got %v after reset, expected FLOATING", lamp.State())
	}
}

func TestBus(t *testing.T) {
	c := nettest.Circuit()
	in, err := nl.NewBusInput(c.NextFreeID(), ns.Pt(0, 0), "data", 8)
	if err != nil {
		t.Fatal(err)
	}
	c.Add(in)
	c.Add(nl.NewWire(c.NextFreeID(), ns.Pt(0, 0), ns.Pt(0, 12)))
	probe := nl.NewBusProbe(c.NextFreeID(), ns.Pt(0, 12))
	c.Add(probe)
	for _, v := range []int64{0, 1, 0x5a, 0xff, 0x80} {
		in.Set(v)
		nettest.Run(c, 2)
		got, ok := probe.Value("data")
		if !ok {
			t.Fatal("bus data not found")
		}
		if got != v {
			t.Errorf("got %#x, expected %#x", got, v)
		}
	}
	bs := probe.Buses()
	if len(bs) != 1 || bs[0].Width != 8 || bs[0].Int() != -128 {
		t.Errorf("bad buses %+v", bs)
	}
	c.Reset()
	if _, ok := probe.Value("data"); ok {
		t.Error("probe not reset")
	}
}

func TestNewBusInput_errors(t *testing.T) {
	td := []struct {
		bus   string
		width int
	}{
		{"data", 0},
		{"data", 65},
		{"data1", 4},
		{"", 4},
	}
	for _, d := range td {
		if _, err := nl.NewBusInput(0, ns.Pt(0, 0), d.bus, d.width); err == nil {
			t.Errorf("NewBusInput(%q, %d): expected an error", d.bus, d.width)
		}
	}
}

func TestInputOutput(t *testing.T) {
	c := nettest.Circuit()
	var got []ns.NetState
	states := []ns.NetState{ns.High, ns.Low, ns.Floating}
	i := 0
	in := nl.NewInput(0, ns.Pt(2, 2), func() ns.NetState { return states[i%len(states)] })
	out := nl.NewOutput(1, ns.Pt(2, 2), func(s ns.NetState) { got = append(got, s) })
	c.Add(out)
	c.Add(in)
	for ; i < 4; i++ {
		c.Tick()
	}
	want := []ns.NetState{ns.Floating, ns.High, ns.Low, ns.Floating}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("got %v, expected %v", got, want)
		}
	}
}

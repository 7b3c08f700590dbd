package netlib_test

import (
	"testing"

	ns "github.com/db47h/netsim"
	nl "github.com/db47h/netsim/netlib"
	"github.com/db47h/netsim/nettest"
)

// xorChip builds an XOR gate out of four NAND gates.
func xorChip(t *testing.T, id int, pos ns.Point) *nl.Chip {
	t.Helper()
	inner := nettest.Circuit()
	n1 := nl.Nand(0, ns.Pt(0, 0), 2)
	n2 := nl.Nand(1, ns.Pt(10, 0), 2)
	n3 := nl.Nand(2, ns.Pt(10, 10), 2)
	n4 := nl.Nand(3, ns.Pt(20, 0), 2)
	parts := []ns.Component{
		n1, n2, n3, n4,
		nl.NewWire(4, n1.In(0).Position(), n2.In(0).Position()),
		nl.NewWire(5, n1.Out().Position(), n2.In(1).Position()),
		nl.NewWire(6, n1.In(1).Position(), n3.In(0).Position()),
		nl.NewWire(7, n1.Out().Position(), n3.In(1).Position()),
		nl.NewWire(8, n2.Out().Position(), n4.In(0).Position()),
		nl.NewWire(9, n3.Out().Position(), n4.In(1).Position()),
	}
	for _, p := range parts {
		inner.Add(p)
	}
	ch, err := nl.NewChip("XOR", id, pos, inner,
		nl.Port{Name: "a", Node: n1.In(0), Offset: ns.Pt(0, 0)},
		nl.Port{Name: "b", Node: n1.In(1), Offset: ns.Pt(0, 1)},
		nl.Port{Name: "out", Node: n4.Out(), Offset: ns.Pt(2, 0), Output: true},
	)
	if err != nil {
		t.Fatal(err)
	}
	return ch
}

func TestChip(t *testing.T) {
	c := nettest.Circuit()
	ch := xorChip(t, 0, ns.Pt(100, 100))
	a := nl.NewSwitch(1, ch.Pin("a").Position())
	b := nl.NewSwitch(2, ch.Pin("b").Position())
	lamp := nl.NewLamp(3, ch.Pin("out").Position())
	for _, cp := range []ns.Component{ch, a, b, lamp} {
		c.Add(cp)
	}
	if ch.Inner().NetCount() != 6 {
		t.Errorf("inner circuit has %d networks, expected 6", ch.Inner().NetCount())
	}
	for i, want := range []bool{false, true, true, false} {
		a.Set(i&1 != 0)
		b.Set(i&2 != 0)
		nettest.Run(c, 8)
		if lamp.Lit() != want {
			t.Errorf("XOR a=%v b=%v = %v, got %v", a.On(), b.On(), want, lamp.State())
		}
	}
	c.Reset()
	if s := ch.Inner().NetState(ch.Inner().Components(nil)[3].Nodes()[2]); s != ns.Low {
		t.Errorf("inner circuit not reset: %v", s)
	}
}

func TestNewChip_errors(t *testing.T) {
	inner := nettest.Circuit()
	g := nl.Not(0, ns.Pt(0, 0))
	inner.Add(g)
	stray := nl.NewLamp(1, ns.Pt(50, 50))
	td := []struct {
		name  string
		inner *ns.Circuit
		ports []nl.Port
	}{
		{"nil_inner", nil, nil},
		{"virtual", ns.NewCircuit(&ns.Options{Virtual: true}), nil},
		{"no_name", inner, []nl.Port{{Node: g.In(0)}}},
		{"no_node", inner, []nl.Port{{Name: "in"}}},
		{"duplicate", inner, []nl.Port{{Name: "in", Node: g.In(0)}, {Name: "in", Node: g.Out()}}},
		{"unconnected", inner, []nl.Port{{Name: "in", Node: stray.In()}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if _, err := nl.NewChip("TEST", 0, ns.Pt(0, 0), d.inner, d.ports...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

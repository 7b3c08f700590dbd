package netlib_test

import (
	"testing"

	ns "github.com/db47h/netsim"
	nl "github.com/db47h/netsim/netlib"
	"github.com/db47h/netsim/nettest"
)

// switches mounts a switch on each named pin of cp.
func switches(c *ns.Circuit, cp *nl.Base, pins ...string) []*nl.Switch {
	var sw []*nl.Switch
	for _, name := range pins {
		s := nl.NewSwitch(c.NextFreeID(), cp.Pin(name).Position())
		c.Add(s)
		sw = append(sw, s)
	}
	return sw
}

func TestHalfAdder(t *testing.T) {
	c := nettest.Circuit()
	h := nl.HalfAdder(0, ns.Pt(0, 0))
	c.Add(h)
	in := switches(c, &h.Base, "a", "b")
	for i := 0; i < 4; i++ {
		a, b := i&1, i>>1&1
		in[0].Set(a != 0)
		in[1].Set(b != 0)
		nettest.Run(c, 2)
		sum := a + b
		if s, cout := c.NetState(h.Pin("s")), c.NetState(h.Pin("c")); s != ns.StateOf(sum&1 != 0) || cout != ns.StateOf(sum > 1) {
			t.Errorf("%d + %d: got s=%v c=%v", a, b, s, cout)
		}
	}
}

func TestFullAdder(t *testing.T) {
	c := nettest.Circuit()
	f := nl.FullAdder(0, ns.Pt(0, 0))
	c.Add(f)
	in := switches(c, &f.Base, "a", "b", "cin")
	for i := 0; i < 8; i++ {
		a, b, cin := i&1, i>>1&1, i>>2&1
		in[0].Set(a != 0)
		in[1].Set(b != 0)
		in[2].Set(cin != 0)
		nettest.Run(c, 2)
		sum := a + b + cin
		if s, cout := c.NetState(f.Pin("s")), c.NetState(f.Pin("cout")); s != ns.StateOf(sum&1 != 0) || cout != ns.StateOf(sum > 1) {
			t.Errorf("%d + %d + %d: got s=%v cout=%v", a, b, cin, s, cout)
		}
	}
}

func TestAdder(t *testing.T) {
	c := nettest.Circuit()
	ad, err := nl.NewAdder(0, ns.Pt(0, 0), "d", 4)
	if err != nil {
		t.Fatal(err)
	}
	a, err := nl.NewBusInput(1, ad.Pin("a").Position(), "d", 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := nl.NewBusInput(2, ad.Pin("b").Position(), "d", 4)
	if err != nil {
		t.Fatal(err)
	}
	probe := nl.NewBusProbe(3, ad.Pin("out").Position())
	carry := nl.NewLamp(4, ad.Pin("c").Position())
	for _, cp := range []ns.Component{a, b, ad, probe, carry} {
		c.Add(cp)
	}
	for va := int64(0); va < 16; va++ {
		for vb := int64(0); vb < 16; vb++ {
			a.Set(va)
			b.Set(vb)
			nettest.Run(c, 3)
			got, ok := probe.Value("d")
			if !ok || got != (va+vb)&15 || carry.Lit() != (va+vb > 15) {
				t.Fatalf("%d + %d: got %d (ok=%v) carry %v", va, vb, got, ok, carry.Lit())
			}
		}
	}
}

func TestAdder_errors(t *testing.T) {
	td := []struct {
		bus   string
		width int
	}{
		{"d", 0},
		{"d", 65},
		{"d1", 4},
		{"", 4},
	}
	for _, d := range td {
		if _, err := nl.NewAdder(0, ns.Pt(0, 0), d.bus, d.width); err == nil {
			t.Errorf("NewAdder(%q, %d): expected an error", d.bus, d.width)
		}
	}
}

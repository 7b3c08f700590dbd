package netsim_test

import (
	"testing"
	"testing/quick"

	ns "github.com/db47h/netsim"
	"github.com/db47h/netsim/nettest"
)

var policies = []ns.Policy{ns.HighLowShort, ns.PreferHigh, ns.PreferLow}

func state(x uint8) ns.NetState { return ns.NetState(x % 4) }
func policy(x uint8) ns.Policy { return policies[int(x)%len(policies)] }

func TestCombine_laws(t *testing.T) {
	identity := func(x, p uint8) bool {
		s := state(x)
		return ns.Combine(ns.Floating, s, policy(p)) == s && ns.Combine(s, ns.Floating, policy(p)) == s
	}
	if err := quick.Check(identity, nil); err != nil {
		t.Error("identity:", err)
	}
	commutative := func(a, b, p uint8) bool {
		return ns.Combine(state(a), state(b), policy(p)) == ns.Combine(state(b), state(a), policy(p))
	}
	if err := quick.Check(commutative, nil); err != nil {
		t.Error("commutativity:", err)
	}
	associative := func(a, b, c, p uint8) bool {
		sa, sb, sc, pp := state(a), state(b), state(c), policy(p)
		return ns.Combine(ns.Combine(sa, sb, pp), sc, pp) == ns.Combine(sa, ns.Combine(sb, sc, pp), pp)
	}
	if err := quick.Check(associative, nil); err != nil {
		t.Error("associativity:", err)
	}
}

func TestCombine(t *testing.T) {
	td := []struct {
		a, b ns.NetState
		p    ns.Policy
		want ns.NetState
	}{
		{ns.High, ns.Low, ns.HighLowShort, ns.ShortCircuit},
		{ns.High, ns.High, ns.HighLowShort, ns.High},
		{ns.Low, ns.Low, ns.HighLowShort, ns.Low},
		{ns.ShortCircuit, ns.High, ns.HighLowShort, ns.ShortCircuit},
		{ns.High, ns.Low, ns.PreferHigh, ns.High},
		{ns.ShortCircuit, ns.Low, ns.PreferHigh, ns.High},
		{ns.Low, ns.Low, ns.PreferHigh, ns.Low},
		{ns.High, ns.Low, ns.PreferLow, ns.Low},
		{ns.ShortCircuit, ns.High, ns.PreferLow, ns.Low},
		{ns.High, ns.High, ns.PreferLow, ns.High},
		{ns.Floating, ns.Floating, ns.PreferLow, ns.Floating},
	}
	for _, d := range td {
		if got := ns.Combine(d.a, d.b, d.p); got != d.want {
			t.Errorf("Combine(%v, %v, %v) = %v, expected %v", d.a, d.b, d.p, got, d.want)
		}
	}
}

func TestNetState_Logic(t *testing.T) {
	src := nettest.NewSeq(true, false)
	if !ns.High.Logic(src) || ns.Low.Logic(src) {
		t.Fatal("defined states must not depend on the noise source")
	}
	if src.Reads() != 0 {
		t.Fatalf("defined states read the noise source %d times", src.Reads())
	}
	// undefined states draw a new value on every read
	for i, s := range []ns.NetState{ns.Floating, ns.Floating, ns.ShortCircuit, ns.ShortCircuit} {
		if got, want := s.Logic(src), i%2 == 0; got != want {
			t.Errorf("read %d of %v = %v, expected %v", i, s, got, want)
		}
	}
	if src.Reads() != 4 {
		t.Errorf("got %d reads, expected 4", src.Reads())
	}
	if !ns.High.IsDefined() || !ns.Low.IsDefined() || ns.Floating.IsDefined() || !ns.ShortCircuit.IsError() {
		t.Error("IsDefined/IsError mismatch")
	}
}

func TestPolicy_UnmarshalText(t *testing.T) {
	td := []struct {
		in   string
		want ns.Policy
		err  bool
	}{
		{"high_low_short", ns.HighLowShort, false},
		{"PREFER_HIGH", ns.PreferHigh, false},
		{"prefer-low", ns.PreferLow, false},
		{"prefer_nothing", 0, true},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			var p ns.Policy
			err := p.UnmarshalText([]byte(d.in))
			if (err != nil) != d.err {
				t.Fatalf("unexpected error value: %v", err)
			}
			if err == nil && p != d.want {
				t.Errorf("got %v, expected %v", p, d.want)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	a, b := ns.NewSource(42), ns.NewSource(42)
	for i := 0; i < 64; i++ {
		if a.Bool() != b.Bool() {
			t.Fatal("sources with the same seed diverge")
		}
	}
}

func TestPolicy_MarshalText(t *testing.T) {
	for _, p := range policies {
		text, err := p.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var q ns.Policy
		if err := q.UnmarshalText(text); err != nil || q != p {
			t.Errorf("%v: round trip through %q gave %v, %v", p, text, q, err)
		}
	}
	if _, err := ns.Policy(7).MarshalText(); err == nil {
		t.Error("expected an error for an invalid policy")
	}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command netsim runs a small demo circuit at a fixed tick rate.
//
// Settings are read from the YAML file given with -config, then from NETSIM_*
// environment variables (NETSIM_POLICY, NETSIM_SEED, NETSIM_TICK_RATE,
// NETSIM_TICKS).
//
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/netlib"
	"golang.org/x/sync/errgroup"
)

type demo struct {
	c     *netsim.Circuit
	lamp  *netlib.Lamp
	count *netlib.BusInput
	probe *netlib.BusProbe
}

// build wires a clock through a NOT gate into a lamp, and a 4 bit counter
// through a wire into a bus probe.
//
func build(c *netsim.Circuit) (*demo, error) {
	d := &demo{c: c}
	clk := netlib.NewClock(c.NextFreeID(), netsim.Pt(0, 0), 4)
	c.Add(clk)
	not := netlib.Not(c.NextFreeID(), clk.Out().Position())
	c.Add(not)
	d.lamp = netlib.NewLamp(c.NextFreeID(), not.Out().Position())
	c.Add(d.lamp)

	var err error
	d.count, err = netlib.NewBusInput(c.NextFreeID(), netsim.Pt(0, 10), "count", 4)
	if err != nil {
		return nil, err
	}
	c.Add(d.count)
	c.Add(netlib.NewWire(c.NextFreeID(), netsim.Pt(0, 10), netsim.Pt(8, 10)))
	d.probe = netlib.NewBusProbe(c.NextFreeID(), netsim.Pt(8, 10))
	c.Add(d.probe)
	return d, nil
}

func (d *demo) step() {
	d.c.Tick()
	n := d.c.Ticks()
	if n%16 == 0 {
		d.count.Set((d.count.Value() + 1) & 0xf)
	}
	v, _ := d.probe.Value("count")
	log.Printf("tick %d: lamp=%v count=%d", n, d.lamp.State(), v)
}

func run(ctx context.Context, cfg *netsim.Config, d *demo) error {
	t := time.NewTicker(cfg.Interval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			d.step()
			if cfg.Ticks > 0 && d.c.Ticks() >= cfg.Ticks {
				return nil
			}
		}
	}
}

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	log.SetFlags(log.LstdFlags)
	cfg, err := netsim.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Virtual {
		log.Fatal("cannot run a virtual circuit")
	}

	logger := log.New(os.Stderr, "netsim: ", log.LstdFlags)
	c := netsim.NewCircuit(cfg.Options(logger))
	d, err := build(c)
	if err != nil {
		log.Fatalf("build circuit: %v", err)
	}
	c.Reset()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return run(ctx, cfg, d)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("stopping after %d ticks", c.Ticks())
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

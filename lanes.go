// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultLane is the lane used by single bit components.
//
const DefaultLane = "bus0"

// LaneName returns the name of lane n of bus.
//
//	LaneName("data", 3) // "data3"
//
func LaneName(bus string, n int) string {
	return bus + strconv.Itoa(n)
}

// ExpandLanes expands a lane range specification into individual lane names.
// A plain name is returned as is:
//
//	ExpandLanes("data[0..3]") // []string{"data0", "data1", "data2", "data3"}
//	ExpandLanes("bus0")       // []string{"bus0"}
//
func ExpandLanes(spec string) ([]string, error) {
	i := strings.IndexRune(spec, '[')
	if i < 0 {
		if spec == "" {
			return nil, errors.New("empty lane name")
		}
		return []string{spec}, nil
	}
	bus := spec[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := spec[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return nil, errors.New("no range in lane specification " + spec)
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, errors.Wrap(err, "range start")
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in lane range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, errors.Wrap(err, "range end")
	}
	if start < 0 || end < start {
		return nil, errors.Errorf("invalid lane range %d..%d", start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, LaneName(bus, i))
	}
	return r, nil
}

// splitLane splits a lane name into its bus name and bit index. The bus name
// is the leading run of non-digits and the bit index the digits that follow
// it up to the end of the name.
//
func splitLane(lane string) (bus string, bit int, ok bool) {
	i := strings.IndexFunc(lane, isDigit)
	if i <= 0 {
		return "", 0, false
	}
	for _, r := range lane[i:] {
		if !isDigit(r) {
			return "", 0, false
		}
	}
	bit, err := strconv.Atoi(lane[i:])
	if err != nil {
		return "", 0, false
	}
	return lane[:i], bit, true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// BusValue is the integer value decoded from the lanes of one bus.
//
type BusValue struct {
	Name  string
	Value int64
	// Width is the highest bit index seen plus one. It is informational only:
	// bit indices above 63 are silently lost.
	Width int
}

// Int returns v.Value truncated to the smallest of 8, 16, 32 or 64 bits that
// holds v.Width bits, sign extended.
//
func (v BusValue) Int() int64 {
	switch {
	case v.Width > 32:
		return v.Value
	case v.Width > 16:
		return int64(int32(v.Value))
	case v.Width > 8:
		return int64(int16(v.Value))
	}
	return int64(int8(v.Value))
}

// DecodeBuses groups lanes named like "data0", "data1", ... into buses and
// returns their values sorted by bus name. Lanes whose name does not end with
// a bit index are ignored. Undefined lanes read from src.
//
func DecodeBuses(lanes map[string]NetState, src Source) []BusValue {
	idx := make(map[string]int)
	var out []BusValue
	for lane, s := range lanes {
		bus, bit, ok := splitLane(lane)
		if !ok {
			continue
		}
		i, ok := idx[bus]
		if !ok {
			i = len(out)
			idx[bus] = i
			out = append(out, BusValue{Name: bus})
		}
		v := &out[i]
		if bit+1 > v.Width {
			v.Width = bit + 1
		}
		if s.Logic(src) && bit < 64 {
			v.Value |= 1 << uint(bit)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DecodeLanes is like DecodeBuses but returns a map of bus names to values.
//
//	DecodeLanes(map[string]NetState{"A0": High, "A1": Low, "A3": High}, src) // map[string]int64{"A": 9}
//
func DecodeLanes(lanes map[string]NetState, src Source) map[string]int64 {
	bs := DecodeBuses(lanes, src)
	m := make(map[string]int64, len(bs))
	for _, b := range bs {
		m[b.Name] = b.Value
	}
	return m
}

// Package overtake derives position-exchange events from per-lap
// position data. Derivation is a pure comparison pass over in-memory
// records; nothing here touches the network or holds state.
package overtake

import (
	"sort"

	"github.com/f1mcp-io/f1mcp/internal/openf1"
)

// Event is one driver passing another between two consecutive laps.
// Events are derived per request and never persisted.
type Event struct {
	SessionKey int
	Lap        int    // the lap on which the new order first appears
	Overtaking int    // driver number that gained the position
	Overtaken  int    // driver number that lost the position
	Date       string // approximate time, from the overtaking driver's sample
}

// RoleFilter restricts events by the drivers involved. Zero means "any
// driver" for that role. When both are set, only events where both
// roles match are kept.
type RoleFilter struct {
	Overtaking int
	Overtaken  int
}

func (f RoleFilter) matches(e Event) bool {
	if f.Overtaking != 0 && e.Overtaking != f.Overtaking {
		return false
	}
	if f.Overtaken != 0 && e.Overtaken != f.Overtaken {
		return false
	}
	return true
}

// Derive computes overtake events from position samples. For each pair
// of consecutive laps it emits one event per pairwise inversion: driver
// A ahead of driver B on lap n and behind B on lap n+1 yields
// {overtaking: B, overtaken: A, lap: n+1}. Multi-way swaps produce one
// event per inverted pair; nothing is deduplicated. Drivers with no
// position on either lap of a transition are excluded from that
// transition. Fewer than two laps of data yields no events.
//
// Output order is deterministic: by lap, then overtaking driver number,
// then overtaken driver number. The same input always produces the same
// event list.
func Derive(positions []openf1.Position, filter RoleFilter) []Event {
	byLap := lapOrder(positions)
	if len(byLap) < 2 {
		return nil
	}

	laps := make([]int, 0, len(byLap))
	for lap := range byLap {
		laps = append(laps, lap)
	}
	sort.Ints(laps)

	var events []Event
	for i := 0; i < len(laps)-1; i++ {
		prev, next := byLap[laps[i]], byLap[laps[i+1]]
		events = append(events, transitionEvents(prev, next, laps[i+1], filter)...)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Lap != events[j].Lap {
			return events[i].Lap < events[j].Lap
		}
		if events[i].Overtaking != events[j].Overtaking {
			return events[i].Overtaking < events[j].Overtaking
		}
		return events[i].Overtaken < events[j].Overtaken
	})
	return events
}

// sample is a driver's resolved position on one lap.
type sample struct {
	position   int
	date       string
	sessionKey int
}

// lapOrder reduces raw samples to one position per (lap, driver). A
// driver can report several samples within a lap; the last one by date
// wins so that mid-lap churn does not leak into the comparison.
func lapOrder(positions []openf1.Position) map[int]map[int]sample {
	byLap := make(map[int]map[int]sample)
	for _, p := range positions {
		drivers := byLap[p.LapNumber]
		if drivers == nil {
			drivers = make(map[int]sample)
			byLap[p.LapNumber] = drivers
		}
		if prev, ok := drivers[p.DriverNumber]; ok && prev.date > p.Date {
			continue
		}
		drivers[p.DriverNumber] = sample{position: p.Position, date: p.Date, sessionKey: p.SessionKey}
	}
	return byLap
}

// transitionEvents compares two consecutive laps and emits one event per
// pairwise inversion.
func transitionEvents(prev, next map[int]sample, lap int, filter RoleFilter) []Event {
	// Only drivers present on both laps take part in the comparison.
	drivers := make([]int, 0, len(prev))
	for d := range prev {
		if _, ok := next[d]; ok {
			drivers = append(drivers, d)
		}
	}
	sort.Ints(drivers)

	var events []Event
	for i := 0; i < len(drivers); i++ {
		for j := i + 1; j < len(drivers); j++ {
			a, b := drivers[i], drivers[j]
			ahead, behind := a, b
			if prev[b].position < prev[a].position {
				ahead, behind = b, a
			}
			// Inversion: the driver that was behind is now ahead.
			if next[behind].position < next[ahead].position {
				e := Event{
					SessionKey: next[behind].sessionKey,
					Lap:        lap,
					Overtaking: behind,
					Overtaken:  ahead,
					Date:       next[behind].date,
				}
				if filter.matches(e) {
					events = append(events, e)
				}
			}
		}
	}
	return events
}

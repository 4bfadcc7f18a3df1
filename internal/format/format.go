// Package format renders OpenF1 records and derived overtake events as
// human-readable text blocks for tool results.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/f1mcp-io/f1mcp/internal/openf1"
	"github.com/f1mcp-io/f1mcp/internal/overtake"
)

const separator = "--------------------------------------------------"

// Sessions renders session records, one block per session.
func Sessions(records []openf1.Record) string {
	if len(records) == 0 {
		return "No sessions found matching the criteria."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d session(s):\n\n", len(records))
	for _, r := range records {
		writeField(&b, "Session Key", numField(r, "session_key"))
		writeField(&b, "Name", r.Str("session_name"))
		writeField(&b, "Type", r.Str("session_type"))
		writeField(&b, "Date", r.Str("date_start"))
		writeField(&b, "Location", r.Str("location"))
		writeField(&b, "Country", r.Str("country_name"))
		writeField(&b, "Circuit", r.Str("circuit_short_name"))
		writeField(&b, "Year", numField(r, "year"))
		writeField(&b, "Meeting Key", numField(r, "meeting_key"))
		endBlock(&b)
	}
	return b.String()
}

// Drivers renders driver records.
func Drivers(records []openf1.Record) string {
	if len(records) == 0 {
		return "No drivers found matching the criteria."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d driver(s):\n\n", len(records))
	for _, r := range records {
		writeField(&b, "Driver Number", numField(r, "driver_number"))
		writeField(&b, "Name", r.Str("full_name"))
		writeField(&b, "Abbreviation", r.Str("name_acronym"))
		writeField(&b, "Team", r.Str("team_name"))
		writeField(&b, "Country", r.Str("country_code"))
		writeField(&b, "Headshot", r.Str("headshot_url"))
		if r.Has("session_key") {
			writeField(&b, "Session Key", numField(r, "session_key"))
		}
		endBlock(&b)
	}
	return b.String()
}

// Laps renders lap records including sector and pit timing where present.
func Laps(records []openf1.Record) string {
	if len(records) == 0 {
		return "No laps found matching the criteria."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d lap(s):\n\n", len(records))
	for _, r := range records {
		writeField(&b, "Driver Number", numField(r, "driver_number"))
		writeField(&b, "Lap Number", numField(r, "lap_number"))
		writeField(&b, "Lap Duration", durField(r, "lap_duration"))
		writeField(&b, "Sector 1", durField(r, "duration_sector_1"))
		writeField(&b, "Sector 2", durField(r, "duration_sector_2"))
		writeField(&b, "Sector 3", durField(r, "duration_sector_3"))
		if r.Has("pit_duration") {
			writeField(&b, "Pit Duration", durField(r, "pit_duration"))
		}
		endBlock(&b)
	}
	return b.String()
}

// Overtakes renders derived overtake events.
func Overtakes(events []overtake.Event) string {
	if len(events) == 0 {
		return "No overtakes found matching the criteria."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d overtake(s):\n\n", len(events))
	for _, e := range events {
		writeField(&b, "Lap", strconv.Itoa(e.Lap))
		writeField(&b, "Overtaking Driver", strconv.Itoa(e.Overtaking))
		writeField(&b, "Overtaken Driver", strconv.Itoa(e.Overtaken))
		writeField(&b, "Approx. Date", e.Date)
		endBlock(&b)
	}
	return b.String()
}

// writeField writes "Label: value". Absent values render as "N/A" so
// every block keeps the same shape.
func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "N/A"
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func endBlock(b *strings.Builder) {
	b.WriteString(separator)
	b.WriteString("\n\n")
}

// numField renders a numeric record field without a trailing ".0" for
// whole numbers; absent fields render as "".
func numField(r openf1.Record, key string) string {
	v, ok := r.Num(key)
	if !ok {
		return ""
	}
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// durField renders a duration-in-seconds field with a trailing "s".
func durField(r openf1.Record, key string) string {
	v, ok := r.Num(key)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}

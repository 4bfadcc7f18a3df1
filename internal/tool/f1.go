package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/f1mcp-io/f1mcp/internal/format"
	"github.com/f1mcp-io/f1mcp/internal/openf1"
	"github.com/f1mcp-io/f1mcp/internal/overtake"
)

const noSessionKeyWarning = "Warning: session_key was not provided; querying across all sessions may return a very large result.\n\n"

func getString(params map[string]any, key string) string {
	v, _ := params[key].(string)
	return v
}

// getNumber reads a numeric parameter. MCP hosts deliver JSON numbers
// as float64, but some send integers as strings, so both are accepted.
func getNumber(params map[string]any, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// --- get_sessions ---

// SessionsTool retrieves F1 race sessions with optional filtering.
type SessionsTool struct {
	API Fetcher
}

func (t *SessionsTool) Name() string { return "get_sessions" }
func (t *SessionsTool) Description() string {
	return "Retrieve F1 race sessions. Can filter by year, country, circuit, session type, etc. " +
		"Returns session details including session_key, date, location, and type."
}

func (t *SessionsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"year":               map[string]any{"type": "integer", "description": "Filter by year (e.g., 2023, 2024)"},
			"country_name":       map[string]any{"type": "string", "description": "Filter by country name (e.g., 'Monaco', 'Italy')"},
			"circuit_short_name": map[string]any{"type": "string", "description": "Filter by circuit short name (e.g., 'Monza', 'Monaco')"},
			"session_name":       map[string]any{"type": "string", "description": "Filter by session name (e.g., 'Race', 'Qualifying', 'Sprint')"},
			"session_key":        map[string]any{"type": "integer", "description": "Get a specific session by session_key"},
			"date_start":         map[string]any{"type": "string", "description": "Filter by start date (ISO format), with optional >= or <= prefix (e.g., '>=2024-01-01')"},
			"session_type":       map[string]any{"type": "string", "description": "Filter by session type (e.g., 'Practice', 'Qualifying', 'Race')"},
			"location":           map[string]any{"type": "string", "description": "Filter by locality (e.g., 'Monte Carlo')"},
			"country_code":       map[string]any{"type": "string", "description": "Filter by country code (e.g., 'MON', 'ITA')"},
			"meeting_key":        map[string]any{"type": "integer", "description": "Filter by meeting key"},
			"gmt_offset":         map[string]any{"type": "string", "description": "Filter by GMT offset (e.g., '02:00:00')"},
		},
	}
}

func (t *SessionsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	f := &openf1.Filter{}
	if year, ok := getNumber(params, "year"); ok {
		f.EqNum("year", year)
	}
	f.Eq("country_name", getString(params, "country_name"))
	f.Eq("circuit_short_name", getString(params, "circuit_short_name"))
	f.Eq("session_name", getString(params, "session_name"))
	if key, ok := getNumber(params, "session_key"); ok {
		f.EqNum("session_key", key)
	}
	f.Comparable("date_start", getString(params, "date_start"))
	f.Eq("session_type", getString(params, "session_type"))
	f.Eq("location", getString(params, "location"))
	f.Eq("country_code", getString(params, "country_code"))
	if key, ok := getNumber(params, "meeting_key"); ok {
		f.EqNum("meeting_key", key)
	}
	f.Eq("gmt_offset", getString(params, "gmt_offset"))

	records, err := t.API.Fetch(ctx, "sessions", f)
	if err != nil {
		return "", fmt.Errorf("get_sessions: %w", err)
	}
	return format.Sessions(records), nil
}

// --- get_drivers ---

// DriversTool retrieves driver information, optionally scoped to a session.
type DriversTool struct {
	API Fetcher
}

func (t *DriversTool) Name() string { return "get_drivers" }
func (t *DriversTool) Description() string {
	return "Retrieve driver information. Can get all drivers or filter by session_key, driver number, or team. " +
		"Returns driver details including name, number, team, country, and headshot URL."
}

func (t *DriversTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_key":   map[string]any{"type": "integer", "description": "Filter drivers by session_key to get drivers from a specific session"},
			"driver_number": map[string]any{"type": "integer", "description": "Filter by driver number (e.g., 1, 44, 16)"},
			"team_name":     map[string]any{"type": "string", "description": "Filter by team name (e.g., 'Red Bull Racing', 'Ferrari')"},
		},
	}
}

func (t *DriversTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	f := &openf1.Filter{}
	if key, ok := getNumber(params, "session_key"); ok {
		f.EqNum("session_key", key)
	}
	if num, ok := getNumber(params, "driver_number"); ok {
		f.EqNum("driver_number", num)
	}
	f.Eq("team_name", getString(params, "team_name"))

	records, err := t.API.Fetch(ctx, "drivers", f)
	if err != nil {
		return "", fmt.Errorf("get_drivers: %w", err)
	}
	return format.Drivers(records), nil
}

// --- get_laps ---

// LapsTool retrieves lap records, with an optional upper bound on pit
// duration.
type LapsTool struct {
	API Fetcher
}

func (t *LapsTool) Name() string { return "get_laps" }
func (t *LapsTool) Description() string {
	return "Retrieve lap records for a session, including lap and sector durations and pit stop times. " +
		"session_key is strongly recommended; pit_duration is an upper bound in seconds."
}

func (t *LapsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_key":   map[string]any{"type": "integer", "description": "Session to retrieve laps for (required for meaningful results)"},
			"driver_number": map[string]any{"type": "integer", "description": "Filter by driver number"},
			"pit_duration":  map[string]any{"type": "number", "description": "Only include laps with a pit duration of at most this many seconds"},
		},
	}
}

func (t *LapsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	f := &openf1.Filter{}
	sessionKey, hasSession := getNumber(params, "session_key")
	if hasSession {
		f.EqNum("session_key", sessionKey)
	}
	if num, ok := getNumber(params, "driver_number"); ok {
		f.EqNum("driver_number", num)
	}
	maxPit, hasPitBound := getNumber(params, "pit_duration")
	if hasPitBound {
		f.BoundNum("pit_duration", openf1.OpLTE, maxPit)
	}

	records, err := t.API.Fetch(ctx, "laps", f)
	if err != nil {
		return "", fmt.Errorf("get_laps: %w", err)
	}
	if hasPitBound {
		records = capPitDuration(records, maxPit)
	}

	out := format.Laps(records)
	if !hasSession {
		out = noSessionKeyWarning + out
	}
	return out, nil
}

// capPitDuration drops records whose pit duration exceeds the bound.
// The bound is also sent upstream as a query clause; filtering again
// here keeps the result correct when the upstream ignores it.
func capPitDuration(records []openf1.Record, max float64) []openf1.Record {
	out := make([]openf1.Record, 0, len(records))
	for _, r := range records {
		if d, ok := r.Num("pit_duration"); ok && d > max {
			continue
		}
		out = append(out, r)
	}
	return out
}

// --- overtakes ---

// OvertakesTool derives overtake events from a session's per-lap
// position data.
type OvertakesTool struct {
	API Fetcher
}

func (t *OvertakesTool) Name() string { return "overtakes" }
func (t *OvertakesTool) Description() string {
	return "Derive overtake events for a session from lap-by-lap position data. " +
		"Optionally filter by the overtaking and/or overtaken driver number to follow a battle."
}

func (t *OvertakesTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_key":              map[string]any{"type": "integer", "description": "Session to derive overtakes for (required for meaningful results)"},
			"overtaking_driver_number": map[string]any{"type": "integer", "description": "Only events where this driver gains the position"},
			"overtaken_driver_number":  map[string]any{"type": "integer", "description": "Only events where this driver loses the position"},
		},
	}
}

func (t *OvertakesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	f := &openf1.Filter{}
	sessionKey, hasSession := getNumber(params, "session_key")
	if hasSession {
		f.EqNum("session_key", sessionKey)
	}

	// The full position field is fetched even when role filters are
	// set: an inversion is only detectable relative to the drivers
	// around it, and the filters apply to derived events, not samples.
	records, err := t.API.Fetch(ctx, "position", f)
	if err != nil {
		return "", fmt.Errorf("overtakes: %w", err)
	}

	roles := overtake.RoleFilter{}
	if num, ok := getNumber(params, "overtaking_driver_number"); ok {
		roles.Overtaking = int(num)
	}
	if num, ok := getNumber(params, "overtaken_driver_number"); ok {
		roles.Overtaken = int(num)
	}

	events := overtake.Derive(openf1.PositionsFromRecords(records), roles)

	out := format.Overtakes(events)
	if !hasSession {
		out = noSessionKeyWarning + out
	}
	return out, nil
}

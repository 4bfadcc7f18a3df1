package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/f1mcp-io/f1mcp/internal/openf1"
)

// stubFetcher implements Fetcher and records what was asked of it.
type stubFetcher struct {
	records  []openf1.Record
	err      error
	resource string
	filter   *openf1.Filter
}

func (s *stubFetcher) Fetch(_ context.Context, resource string, f *openf1.Filter) ([]openf1.Record, error) {
	s.resource = resource
	s.filter = f
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubFetcher) sentQuery() string {
	if s.filter == nil {
		return ""
	}
	return s.filter.Encode()
}

func TestSessionsTool_MonacoScenario(t *testing.T) {
	api := &stubFetcher{records: []openf1.Record{{
		"session_key":        float64(9158),
		"session_name":       "Race",
		"session_type":       "Race",
		"date_start":         "2024-05-26T13:00:00+00:00",
		"location":           "Monte Carlo",
		"country_name":       "Monaco",
		"circuit_short_name": "Monaco",
		"year":               float64(2024),
		"meeting_key":        float64(1240),
	}}}
	tool := &SessionsTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{
		"year":         float64(2024),
		"country_name": "Monaco",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.resource != "sessions" {
		t.Errorf("resource = %q", api.resource)
	}
	if got := api.sentQuery(); got != "year=2024&country_name=Monaco" {
		t.Errorf("query = %q", got)
	}
	for _, want := range []string{"9158", "2024-05-26T13:00:00+00:00", "Monte Carlo", "Type: Race"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionsTool_NoParamsNoClauses(t *testing.T) {
	api := &stubFetcher{}
	tool := &SessionsTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.sentQuery(); got != "" {
		t.Errorf("expected no clauses, got %q", got)
	}
	if out != "No sessions found matching the criteria." {
		t.Errorf("out = %q", out)
	}
}

func TestSessionsTool_DateStartModifier(t *testing.T) {
	api := &stubFetcher{}
	tool := &SessionsTool{API: api}

	_, err := tool.Execute(context.Background(), map[string]any{"date_start": ">=2024-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.sentQuery(); got != "date_start>=2024-01-01" {
		t.Errorf("query = %q", got)
	}
}

func TestDriversTool_Filters(t *testing.T) {
	api := &stubFetcher{records: []openf1.Record{{
		"driver_number": float64(1),
		"full_name":     "Max VERSTAPPEN",
		"team_name":     "Red Bull Racing",
	}}}
	tool := &DriversTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{
		"session_key":   float64(9158),
		"driver_number": float64(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.resource != "drivers" {
		t.Errorf("resource = %q", api.resource)
	}
	if got := api.sentQuery(); got != "session_key=9158&driver_number=1" {
		t.Errorf("query = %q", got)
	}
	if !strings.Contains(out, "Max VERSTAPPEN") {
		t.Errorf("output missing driver name:\n%s", out)
	}
}

func TestLapsTool_PitDurationUpperBound(t *testing.T) {
	// Upstream ignores the bound and returns both pit stops; the tool
	// must still drop the 40s one.
	api := &stubFetcher{records: []openf1.Record{
		{"driver_number": float64(44), "lap_number": float64(12), "pit_duration": 25.0},
		{"driver_number": float64(1), "lap_number": float64(14), "pit_duration": 40.0},
	}}
	tool := &LapsTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{
		"session_key":  float64(9158),
		"pit_duration": 30.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.sentQuery(); got != "session_key=9158&pit_duration<=30" {
		t.Errorf("query = %q", got)
	}
	if !strings.Contains(out, "Pit Duration: 25s") {
		t.Errorf("expected 25s pit stop in output:\n%s", out)
	}
	if strings.Contains(out, "40") {
		t.Errorf("40s pit stop must be filtered out:\n%s", out)
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("no warning expected when session_key is given:\n%s", out)
	}
}

func TestLapsTool_MissingSessionKeyWarns(t *testing.T) {
	api := &stubFetcher{}
	tool := &LapsTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Warning:") {
		t.Errorf("expected warning prefix:\n%s", out)
	}
	if !strings.Contains(out, "No laps found") {
		t.Errorf("expected empty-result message after warning:\n%s", out)
	}
}

func TestOvertakesTool_DerivesFromPositions(t *testing.T) {
	api := &stubFetcher{records: []openf1.Record{
		{"session_key": float64(9158), "driver_number": float64(1), "lap_number": float64(1), "position": float64(1)},
		{"session_key": float64(9158), "driver_number": float64(44), "lap_number": float64(1), "position": float64(2)},
		{"session_key": float64(9158), "driver_number": float64(1), "lap_number": float64(2), "position": float64(2)},
		{"session_key": float64(9158), "driver_number": float64(44), "lap_number": float64(2), "position": float64(1)},
	}}
	tool := &OvertakesTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{"session_key": float64(9158)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.resource != "position" {
		t.Errorf("resource = %q", api.resource)
	}
	if got := api.sentQuery(); got != "session_key=9158" {
		t.Errorf("query = %q", got)
	}
	for _, want := range []string{"Found 1 overtake(s):", "Lap: 2", "Overtaking Driver: 44", "Overtaken Driver: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOvertakesTool_RoleFilterExcludes(t *testing.T) {
	api := &stubFetcher{records: []openf1.Record{
		{"session_key": float64(9158), "driver_number": float64(1), "lap_number": float64(1), "position": float64(1)},
		{"session_key": float64(9158), "driver_number": float64(44), "lap_number": float64(1), "position": float64(2)},
		{"session_key": float64(9158), "driver_number": float64(1), "lap_number": float64(2), "position": float64(2)},
		{"session_key": float64(9158), "driver_number": float64(44), "lap_number": float64(2), "position": float64(1)},
	}}
	tool := &OvertakesTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{
		"session_key":              float64(9158),
		"overtaking_driver_number": float64(16), // not in this session
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "No overtakes found matching the criteria." {
		t.Errorf("out = %q", out)
	}
}

func TestOvertakesTool_MalformedPositionsYieldZeroEvents(t *testing.T) {
	api := &stubFetcher{records: []openf1.Record{
		{"driver_number": "not-a-number", "lap_number": float64(1)},
		{"position": float64(3)},
	}}
	tool := &OvertakesTool{API: api}

	out, err := tool.Execute(context.Background(), map[string]any{"session_key": float64(9158)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No overtakes found") {
		t.Errorf("out = %q", out)
	}
}

func TestAllTools_FetchErrorSurfacesAsError(t *testing.T) {
	fetchErr := &openf1.FetchError{Resource: "sessions", StatusCode: 503, Body: "unavailable"}
	api := &stubFetcher{err: fetchErr}

	tools := []Tool{
		&SessionsTool{API: api},
		&DriversTool{API: api},
		&LapsTool{API: api},
		&OvertakesTool{API: api},
	}
	for _, tl := range tools {
		_, err := tl.Execute(context.Background(), map[string]any{})
		if err == nil {
			t.Errorf("%s: expected error", tl.Name())
			continue
		}
		if !strings.Contains(err.Error(), "503") {
			t.Errorf("%s: error %q does not carry the status", tl.Name(), err)
		}
	}
}

func TestGetNumber_AcceptsStringsAndFloats(t *testing.T) {
	params := map[string]any{
		"a": float64(9158),
		"b": "9158",
		"c": "not a number",
	}
	if v, ok := getNumber(params, "a"); !ok || v != 9158 {
		t.Errorf("a = %v, %v", v, ok)
	}
	if v, ok := getNumber(params, "b"); !ok || v != 9158 {
		t.Errorf("b = %v, %v", v, ok)
	}
	if _, ok := getNumber(params, "c"); ok {
		t.Error("c should not parse")
	}
	if _, ok := getNumber(params, "missing"); ok {
		t.Error("missing should not parse")
	}
}

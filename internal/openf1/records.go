package openf1

// Record is one row returned by an OpenF1 resource: a mapping of field
// name to JSON value. Fields the server does not know about pass
// through untouched.
type Record map[string]any

// Str returns the string value of a field, or "" if absent or not a string.
func (r Record) Str(key string) string {
	v, _ := r[key].(string)
	return v
}

// Num returns the numeric value of a field. JSON numbers decode as
// float64; integers stored as float64 are handled transparently.
func (r Record) Num(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int returns the field as an int, or 0 if absent or non-numeric.
func (r Record) Int(key string) int {
	v, _ := r.Num(key)
	return int(v)
}

// Has reports whether the field is present and non-null.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Position is one per-lap position sample used as input to overtake
// derivation: which position a driver held on a given lap.
type Position struct {
	SessionKey   int
	DriverNumber int
	LapNumber    int
	Position     int
	Date         string
}

// PositionsFromRecords converts raw position records into typed samples.
// Records missing a driver number, lap number, or position are dropped
// rather than guessed at.
func PositionsFromRecords(records []Record) []Position {
	out := make([]Position, 0, len(records))
	for _, r := range records {
		driver, ok := r.Num("driver_number")
		if !ok {
			continue
		}
		lap, ok := r.Num("lap_number")
		if !ok {
			continue
		}
		pos, ok := r.Num("position")
		if !ok {
			continue
		}
		out = append(out, Position{
			SessionKey:   r.Int("session_key"),
			DriverNumber: int(driver),
			LapNumber:    int(lap),
			Position:     int(pos),
			Date:         r.Str("date"),
		})
	}
	return out
}

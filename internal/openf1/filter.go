package openf1

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Op is a comparison operator understood by the OpenF1 query syntax.
// The empty operator means equality.
type Op string

const (
	OpEq  Op = ""
	OpGTE Op = ">="
	OpLTE Op = "<="
)

// Clause is a single query filter: field, operator, value.
type Clause struct {
	Field string
	Op    Op
	Value string
}

// Filter accumulates query clauses in declaration order. The zero value
// is an empty filter. Methods that receive an empty value add nothing,
// so optional tool parameters can be forwarded unconditionally.
type Filter struct {
	clauses []Clause
}

// Eq adds an equality clause. Empty values are skipped.
func (f *Filter) Eq(field, value string) *Filter {
	if value == "" {
		return f
	}
	f.clauses = append(f.clauses, Clause{Field: field, Value: value})
	return f
}

// EqInt adds an equality clause for an integer value.
func (f *Filter) EqInt(field string, value int) *Filter {
	return f.Eq(field, strconv.Itoa(value))
}

// EqNum adds an equality clause for a numeric value, rendered without
// exponent notation (9158, 30.5).
func (f *Filter) EqNum(field string, value float64) *Filter {
	return f.Eq(field, formatNum(value))
}

// Bound adds a comparison clause (>= or <=). Empty values are skipped.
func (f *Filter) Bound(field string, op Op, value string) *Filter {
	if value == "" {
		return f
	}
	f.clauses = append(f.clauses, Clause{Field: field, Op: op, Value: value})
	return f
}

// BoundNum adds a numeric comparison clause.
func (f *Filter) BoundNum(field string, op Op, value float64) *Filter {
	return f.Bound(field, op, formatNum(value))
}

// Comparable adds a clause from a raw value that may carry a leading
// ">=" or "<=" modifier, e.g. ">=2024-01-01". Without a modifier the
// clause is an equality.
func (f *Filter) Comparable(field, raw string) *Filter {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, string(OpGTE)):
		return f.Bound(field, OpGTE, strings.TrimSpace(raw[len(OpGTE):]))
	case strings.HasPrefix(raw, string(OpLTE)):
		return f.Bound(field, OpLTE, strings.TrimSpace(raw[len(OpLTE):]))
	default:
		return f.Eq(field, raw)
	}
}

// Clauses returns the accumulated clauses in declaration order.
func (f *Filter) Clauses() []Clause {
	return f.clauses
}

// Empty reports whether the filter has no clauses.
func (f *Filter) Empty() bool {
	return len(f.clauses) == 0
}

// Encode renders the filter as an OpenF1 query string. Comparison
// operators are appended to the field name the way the API documents
// them: date_start>=2024-01-01. Values are percent-encoded.
func (f *Filter) Encode() string {
	var b strings.Builder
	for i, c := range f.clauses {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(c.Field))
		if c.Op == OpEq {
			b.WriteByte('=')
		} else {
			b.WriteString(string(c.Op))
		}
		b.WriteString(url.QueryEscape(c.Value))
	}
	return b.String()
}

// ParseQuery is the inverse of Encode. It exists so tests can verify
// that building then parsing a filter round-trips the non-empty clauses.
func ParseQuery(q string) (*Filter, error) {
	f := &Filter{}
	if q == "" {
		return f, nil
	}
	for _, part := range strings.Split(q, "&") {
		field, op, value, err := splitClause(part)
		if err != nil {
			return nil, err
		}
		f.clauses = append(f.clauses, Clause{Field: field, Op: op, Value: value})
	}
	return f, nil
}

func splitClause(part string) (field string, op Op, value string, err error) {
	for _, o := range []Op{OpGTE, OpLTE} {
		if i := strings.Index(part, string(o)); i >= 0 {
			field, err = url.QueryUnescape(part[:i])
			if err != nil {
				return "", "", "", fmt.Errorf("openf1: parse clause %q: %w", part, err)
			}
			value, err = url.QueryUnescape(part[i+len(o):])
			if err != nil {
				return "", "", "", fmt.Errorf("openf1: parse clause %q: %w", part, err)
			}
			return field, o, value, nil
		}
	}
	i := strings.IndexByte(part, '=')
	if i < 0 {
		return "", "", "", fmt.Errorf("openf1: malformed clause %q", part)
	}
	field, err = url.QueryUnescape(part[:i])
	if err != nil {
		return "", "", "", fmt.Errorf("openf1: parse clause %q: %w", part, err)
	}
	value, err = url.QueryUnescape(part[i+1:])
	if err != nil {
		return "", "", "", fmt.Errorf("openf1: parse clause %q: %w", part, err)
	}
	return field, OpEq, value, nil
}

// formatNum renders a float without exponent notation and without a
// trailing ".0" for whole numbers, matching what OpenF1 expects.
func formatNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

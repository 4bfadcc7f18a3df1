package tool

import (
	"context"

	"github.com/f1mcp-io/f1mcp/internal/openf1"
)

// Tool is the interface every F1 data tool must implement.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any // JSON Schema
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// Fetcher retrieves records for a resource and query filter. The OpenF1
// client implements it; tests substitute a stub.
type Fetcher interface {
	Fetch(ctx context.Context, resource string, f *openf1.Filter) ([]openf1.Record, error)
}

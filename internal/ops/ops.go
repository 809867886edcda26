// Package ops implements the operations shared by the CLI, MCP, and web
// surfaces. Each operation lives in its own file with typed Input/Output
// structs so every surface validates and serializes the same way.
package ops

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return limit, max(offset, 0)
}

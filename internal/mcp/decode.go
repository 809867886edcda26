package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode maps a tool call's arguments onto one of the request structs above.
// Going through JSON keeps the field handling identical to the struct tags
// instead of asserting on the raw argument map.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

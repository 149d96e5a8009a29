package tools

import (
	"encoding/json"

	"github.com/cf-ypark/mcp-server-cloudflare/pkg/errors"
)

// decodeArgs unmarshals tool arguments, tolerating an absent arguments object
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errors.ErrInvalidArguments(err)
	}
	return nil
}

// clampInt applies a default for the zero value, then clamps to [min, max]
func clampInt(v, min, max, def int) int {
	if v == 0 {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// pageOrFirst treats anything below 1 as the first page
func pageOrFirst(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

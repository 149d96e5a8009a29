package tools

import "fmt"

// maxResponseBytes is the safety threshold for ad-hoc query results. It sits
// well below the transport payload ceiling to leave headroom for the JSON-RPC
// and content-block wrapping around the payload.
const maxResponseBytes = 512 * 1024

// sizeAdvisory replaces an oversized payload. It is a directive to the
// caller, not an error.
type sizeAdvisory struct {
	Advisory     string `json:"advisory"`
	SizeBytes    int    `json:"sizeBytes"`
	MaxSizeBytes int    `json:"maxSizeBytes"`
}

// guardSize checks a serialized result against the threshold. Above it, the
// payload is discarded and an advisory is returned instead. Only the raw
// query path runs this check; the schema tools are paginated at the source
// and cannot grow unboundedly.
func guardSize(payload []byte) (any, bool) {
	if len(payload) <= maxResponseBytes {
		return nil, false
	}
	return sizeAdvisory{
		Advisory: fmt.Sprintf(
			"Result is %d bytes, above the %d byte response limit. "+
				"Re-invoke with paginationPath, pageSize and page parameters to "+
				"window the result, or narrow the query.",
			len(payload), maxResponseBytes),
		SizeBytes:    len(payload),
		MaxSizeBytes: maxResponseBytes,
	}, true
}

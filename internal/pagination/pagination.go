// Package pagination provides a generic pagination window over ordered
// collections, plus a dotted-path variant that windows an array nested
// inside an arbitrary JSON document.
package pagination

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type (
	// Page is a single window into an ordered collection together with
	// metadata describing its position within the whole.
	Page[T any] struct {
		Items       []T  `json:"items"`
		Page        int  `json:"page"`
		PageSize    int  `json:"pageSize"`
		Total       int  `json:"total"`
		TotalPages  int  `json:"totalPages"`
		HasNext     bool `json:"hasNext"`
		HasPrevious bool `json:"hasPrevious"`
	}

	// Meta describes a window applied at a dotted path inside a JSON document.
	Meta struct {
		Path        string `json:"path"`
		Page        int    `json:"page"`
		PageSize    int    `json:"pageSize"`
		Total       int    `json:"total"`
		TotalPages  int    `json:"totalPages"`
		HasNext     bool   `json:"hasNext"`
		HasPrevious bool   `json:"hasPrevious"`
	}
)

// Paginate slices items into the requested window. page is 1-indexed and is
// not validated against the page count: a page beyond the last yields empty
// items. pageSize must be >= 1; minimum bounds are the caller's concern.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	window := []T{}
	if start < total {
		window = items[start:end]
	}

	return Page[T]{
		Items:       window,
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// PaginateAtPath windows the array found at a dotted field path (e.g.
// "data.viewer.zones") inside raw JSON. When any path segment is absent or
// the resolved value is not an array, the document is returned unchanged and
// ok is false; that is deliberately not an error, the caller simply gets the
// full value back.
func PaginateAtPath(raw []byte, path string, page, pageSize int) (out []byte, meta *Meta, ok bool) {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	value := gjson.GetBytes(raw, path)
	if !value.Exists() || !value.IsArray() {
		return raw, nil, false
	}

	elems := value.Array()
	window := Paginate(elems, page, pageSize)

	parts := make([]string, 0, len(window.Items))
	for _, e := range window.Items {
		parts = append(parts, e.Raw)
	}
	windowJSON := "[" + strings.Join(parts, ",") + "]"

	out, err := sjson.SetRawBytes(raw, path, []byte(windowJSON))
	if err != nil {
		return raw, nil, false
	}

	return out, &Meta{
		Path:        path,
		Page:        window.Page,
		PageSize:    window.PageSize,
		Total:       window.Total,
		TotalPages:  window.TotalPages,
		HasNext:     window.HasNext,
		HasPrevious: window.HasPrevious,
	}, true
}

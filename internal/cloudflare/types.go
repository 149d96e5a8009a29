package cloudflare

import (
	"encoding/json"
	"strings"
)

type (
	// Response is the parsed body of one upstream GraphQL call. A non-empty
	// Errors slice does not imply Data is absent; partial data is common.
	Response struct {
		Data   json.RawMessage `json:"data,omitempty"`
		Errors []Error         `json:"errors,omitempty"`
	}

	// Error is a single entry of the upstream GraphQL errors array
	Error struct {
		Message string `json:"message"`
	}

	// TypeRef is a recursive GraphQL type reference. OfType is populated only
	// for the wrapping kinds NON_NULL and LIST; the introspection queries
	// nest it to three levels, enough for NON_NULL(LIST(NON_NULL(T))).
	TypeRef struct {
		Kind   string   `json:"kind"`
		Name   *string  `json:"name"`
		OfType *TypeRef `json:"ofType,omitempty"`
	}

	// ArgDescriptor describes one argument of a field, or one input field of
	// an INPUT_OBJECT type
	ArgDescriptor struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Type        TypeRef `json:"type"`
	}

	// FieldDescriptor describes one field of an OBJECT or INTERFACE type
	FieldDescriptor struct {
		Name        string          `json:"name"`
		Description *string         `json:"description"`
		Args        []ArgDescriptor `json:"args"`
		Type        TypeRef         `json:"type"`
	}

	// EnumValueDescriptor describes one value of an ENUM type
	EnumValueDescriptor struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}

	// TypeDescriptor is the full shape of one named type. The optional
	// members are populated only for the kinds that support them, e.g.
	// EnumValues only for ENUM.
	TypeDescriptor struct {
		Name          string                `json:"name"`
		Kind          string                `json:"kind"`
		Description   *string               `json:"description"`
		Fields        []FieldDescriptor     `json:"fields,omitempty"`
		InputFields   []ArgDescriptor       `json:"inputFields,omitempty"`
		Interfaces    []TypeRef             `json:"interfaces,omitempty"`
		EnumValues    []EnumValueDescriptor `json:"enumValues,omitempty"`
		PossibleTypes []TypeRef             `json:"possibleTypes,omitempty"`
	}

	// TypeSummary is one entry of the flat schema type list
	TypeSummary struct {
		Name        string  `json:"name"`
		Kind        string  `json:"kind"`
		Description *string `json:"description"`
	}

	// SchemaOverview is the root operation type names plus the flat,
	// field-free list of every named type in the schema
	SchemaOverview struct {
		QueryTypeName        string        `json:"queryTypeName"`
		MutationTypeName     string        `json:"mutationTypeName,omitempty"`
		SubscriptionTypeName string        `json:"subscriptionTypeName,omitempty"`
		Types                []TypeSummary `json:"types"`
	}
)

// String renders a TypeRef the way it would appear in SDL, e.g. "[Zone!]!"
func (r *TypeRef) String() string {
	switch r.Kind {
	case "NON_NULL":
		if r.OfType == nil {
			return "!"
		}
		return r.OfType.String() + "!"
	case "LIST":
		if r.OfType == nil {
			return "[]"
		}
		return "[" + r.OfType.String() + "]"
	default:
		if r.Name != nil {
			return *r.Name
		}
		return r.Kind
	}
}

func derefDescription(d *string) string {
	if d == nil {
		return ""
	}
	return *d
}

func containsFold(s, keyword string) bool {
	return strings.Contains(strings.ToLower(s), keyword)
}

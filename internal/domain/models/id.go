// internal/domain/models/id.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a record on the REST backend.
//
// The backend assigns or preserves ids verbatim, so a record id can arrive as
// a JSON string ("a1b2") or a JSON number (1). Both decode to the same ID.
type ID string

// String returns the id as used in resource paths.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", b)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	// 42.0 must key the same record the backend stores as "42".
	if f, err := n.Float64(); err == nil {
		*id = ID(IDString(f))
		return nil
	}
	*id = ID(n.String())
	return nil
}

// IDString renders a decoded JSON value (string or float64) as an id string.
// It is the key normalisation shared by the client and the backend stores.
func IDString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case ID:
		return string(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// FieldMatches reports whether a decoded JSON field equals want by string
// form. For an array field any element may match. The backend filter and
// the client's local re-filter both use it, so they agree on every record.
func FieldMatches(v any, want string) bool {
	if arr, ok := v.([]any); ok {
		for _, e := range arr {
			if IDString(e) == want {
				return true
			}
		}
		return false
	}
	return IDString(v) == want
}

// Patch is a partial record sent with PATCH. Keys are backend field names.
type Patch map[string]any

// CompareValues orders decoded JSON scalars for sorting. Missing values sort
// first; numbers compare numerically and everything else by its string form.
func CompareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(IDString(a), IDString(b))
}

// Package model defines the typed records exchanged with the accounting backend.
// Each screen owns one record type; identifiers are opaque to the console.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is an opaque record identifier. Backends emit numeric or string ids;
// both decode into the same string form.
type ID string

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Entity is implemented by every record a screen lists.
type Entity interface {
	EntityID() ID
}

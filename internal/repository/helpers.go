package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite
// storage: SQL NULL for nil, otherwise the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// scopeToJSON serializes a resource scope map for TEXT storage. A nil or
// empty map stores as "{}".
func scopeToJSON(scope map[string]string) (string, error) {
	if len(scope) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(scope)
	if err != nil {
		return "", fmt.Errorf("encoding resource scope: %w", err)
	}
	return string(b), nil
}

// scopeFromJSON deserializes a stored resource scope. "{}" and "" both
// decode to nil so empty scopes compare equal regardless of storage form.
func scopeFromJSON(s string) (map[string]string, error) {
	if s == "" || s == "{}" {
		return nil, nil
	}
	var scope map[string]string
	if err := json.Unmarshal([]byte(s), &scope); err != nil {
		return nil, fmt.Errorf("decoding resource scope: %w", err)
	}
	if len(scope) == 0 {
		return nil, nil
	}
	return scope, nil
}

// idsToJSON serializes a hearing-ID list for TEXT storage.
func idsToJSON(ids []string) (string, error) {
	if len(ids) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding id list: %w", err)
	}
	return string(b), nil
}

// idsFromJSON deserializes a stored hearing-ID list.
func idsFromJSON(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("decoding id list: %w", err)
	}
	return ids, nil
}

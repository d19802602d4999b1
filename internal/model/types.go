package model

import (
	"database/sql/driver"

	"github.com/goccy/go-json"
)

// IntList is an int slice stored as a JSON column.
type IntList []int

func (l *IntList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	return json.Unmarshal(asBytes(src), l)
}

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// StringList is a string slice stored as a JSON column.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	return json.Unmarshal(asBytes(src), l)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func asBytes(src any) []byte {
	switch v := src.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	}
	return nil
}

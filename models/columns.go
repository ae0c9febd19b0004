package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Color is one product color variant.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex" binding:"omitempty,hexcolor"`
}

// ColorList stores the ordered color variants of a product as a JSON column.
type ColorList []Color

func (l ColorList) Value() (driver.Value, error) {
	if l == nil {
		l = ColorList{}
	}
	return json.Marshal(l)
}

func (l *ColorList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("models: cannot scan column of type %T", src)
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/char-sheet/internal/stats"
)

// Value is a raw form field. It keeps whatever the user typed and decodes
// from either a JSON string or a JSON number.
type Value string

// Int reads the value leniently, returning def when it holds no number.
func (v Value) Int(def int) int {
	return stats.LenientInt(string(v), def)
}

func IntValue(n int) Value {
	return Value(strconv.Itoa(n))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	*v = Value(data)
	return nil
}

// Flag is a checkbox stored as 0 or 1.
type Flag int

func FlagOf(b bool) Flag {
	if b {
		return 1
	}
	return 0
}

// Checked matches the page, which only treated exactly 1 as checked.
func (f Flag) Checked() bool {
	return f == 1
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = flagFrom(raw)
	return nil
}

func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*f = flagFrom(raw)
	return nil
}

func flagFrom(raw any) Flag {
	switch x := raw.(type) {
	case bool:
		return FlagOf(x)
	case float64:
		return Flag(int(x))
	case int:
		return Flag(x)
	case string:
		return Flag(stats.LenientInt(x, 0))
	}
	return 0
}

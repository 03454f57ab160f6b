package engine

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders Color as its lower-case name ("white", "black", "none").
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses Color from its lower-case name.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "none", "":
		*c = None
	default:
		return fmt.Errorf("invalid color: %s", s)
	}
	return nil
}

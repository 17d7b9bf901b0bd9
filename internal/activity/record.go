package activity

import "strings"

// Record is a single timestamped reading of pointer position and pressed
// keys. Immutable once created.
type Record struct {
	Timestamp int64
	MouseX    int
	MouseY    int
	Keys      []string
}

// KeysField renders the pressed keys the way the CSV output expects them:
// key names joined by "+", empty when no keys were down.
func (r Record) KeysField() string {
	return strings.Join(r.Keys, "+")
}

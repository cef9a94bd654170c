package project

import (
	"strconv"
	"strings"
)

// Key addresses one displayed record by identifier and position, which
// stays unique even when a batch repeats an identifier.
type Key struct {
	ID    ID
	Index int
}

// String renders the key as "<id>-<index>".
func (k Key) String() string {
	return string(k.ID) + "-" + strconv.Itoa(k.Index)
}

// DOMID returns an HTML element id for the key. Characters outside
// [A-Za-z0-9_-] in the identifier are replaced with '_'.
func (k Key) DOMID() string {
	var b strings.Builder
	b.WriteString("project-")
	for _, r := range string(k.ID) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(k.Index))
	return b.String()
}

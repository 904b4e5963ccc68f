package dialect

import "strings"

const alreadyExistsText = "already exists"

// MessageSaysExists reports whether msg names an object that already exists,
// whatever the server or driver that produced it.
func MessageSaysExists(msg string) bool {
	return strings.Contains(strings.ToLower(msg), alreadyExistsText)
}

// Package prompt holds the static Turkish conversation texts.
package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/welcome.txt
var welcomeRaw string

// Welcome returns the greeting shown when a conversation opens.
func Welcome() string {
	return strings.TrimSpace(welcomeRaw)
}

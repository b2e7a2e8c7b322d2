// Package diagram compiles diagram models into PlantUML markup.
//
// Every emitter is a pure function: the same model always produces the same
// text. Relationship kinds outside a diagram's vocabulary produce no line.
package diagram

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitize turns a display name into a PlantUML identifier by replacing each
// run of whitespace with a single underscore. Distinct names may collide.
func Sanitize(name string) string {
	return whitespaceRun.ReplaceAllString(name, "_")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
}

const (
	startUML = "@startuml\n"
	endUML   = "@enduml\n"
)

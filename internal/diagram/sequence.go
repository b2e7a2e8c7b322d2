package diagram

import (
	"fmt"
	"strings"

	"uml-generator/internal/models"
)

// Sequence emits a sequence diagram. Message order is preserved exactly.
func Sequence(m models.SequenceModel) string {
	var b strings.Builder
	b.WriteString(startUML)

	for _, obj := range m.Objects {
		fmt.Fprintf(&b, "participant %s as %s\n", quote(obj), Sanitize(obj))
	}
	b.WriteString("\n")

	for _, msg := range m.Messages {
		fmt.Fprintf(&b, "%s -> %s: %s\n", Sanitize(msg.Sender), Sanitize(msg.Receiver), msg.Label)
	}

	b.WriteString(endUML)
	return b.String()
}

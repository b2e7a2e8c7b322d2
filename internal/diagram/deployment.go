package diagram

import (
	"fmt"
	"strings"

	"uml-generator/internal/models"
)

// Deployment emits a deployment diagram
func Deployment(m models.DeploymentModel) string {
	var b strings.Builder
	b.WriteString(startUML)

	for _, comp := range m.Components {
		fmt.Fprintf(&b, "node %s as %s {\n", quote(comp.Name), Sanitize(comp.Name))
		for _, svc := range comp.Services {
			fmt.Fprintf(&b, "  [%s]\n", svc)
		}
		b.WriteString("}\n\n")
	}

	for _, rel := range m.Relationships {
		from, to := Sanitize(rel.From), Sanitize(rel.To)
		if rel.Label != nil {
			fmt.Fprintf(&b, "%s --> %s : %s\n", from, to, *rel.Label)
			continue
		}
		fmt.Fprintf(&b, "%s --> %s\n", from, to)
	}

	b.WriteString(endUML)
	return b.String()
}

package diagram

import (
	"fmt"
	"strings"

	"uml-generator/internal/models"
)

const useCaseHeader = `left to right direction
skinparam ActorPadding 30
skinparam UseCasePadding 25
skinparam Linetype ortho
skinparam dpi 150
legend left
Association  --> Solid Line
Include      ..> Dashed Line
Extend       ..|> Dotted Line
endlegend
`

// UseCase emits a use-case diagram
func UseCase(m models.UseCaseModel) string {
	var b strings.Builder
	b.WriteString(startUML)
	b.WriteString(useCaseHeader)

	b.WriteString("\n' Define actors\n")
	for _, actor := range m.Actors {
		fmt.Fprintf(&b, "actor %s as %s\n", quote(actor), Sanitize(actor))
	}

	b.WriteString("\n' Define use cases\n")
	for _, uc := range m.UseCases {
		fmt.Fprintf(&b, "usecase %s as %s\n", quote(uc), Sanitize(uc))
	}

	b.WriteString("\n' Define relationships\n")
	for _, rel := range m.Relationships {
		if line, ok := useCaseRelationLine(rel); ok {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(endUML)
	return b.String()
}

func useCaseRelationLine(rel models.UseCaseRelationship) (string, bool) {
	from, to := Sanitize(rel.From), Sanitize(rel.To)
	switch rel.Kind {
	case models.UseCaseAssociation:
		return from + " -- " + to, true
	case models.UseCaseExtend:
		return from + " .> " + to, true
	case models.UseCaseInclude:
		return from + " <. " + to, true
	case models.UseCaseGeneralization:
		return from + " <|-- " + to, true
	default:
		return "", false
	}
}

package diagram

import (
	"fmt"
	"strings"

	"uml-generator/internal/models"
)

// MultiplicitySeparator splits an association multiplicity into its bounds, e.g. "1-*"
const MultiplicitySeparator = "-"

// Class emits a class diagram
func Class(m models.ClassModel) string {
	var b strings.Builder
	b.WriteString(startUML)
	b.WriteString("skinparam classAttributeIconSize 0\n\n")

	for _, cls := range m.Classes {
		fmt.Fprintf(&b, "class %s {\n", Sanitize(cls.Name))
		for _, attr := range cls.Attributes {
			fmt.Fprintf(&b, "  %s\n", attr)
		}
		for _, method := range cls.Methods {
			fmt.Fprintf(&b, "  %s\n", method)
		}
		b.WriteString("}\n\n")
	}

	for _, rel := range m.Relationships {
		if line, ok := classRelationLine(rel); ok {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(endUML)
	return b.String()
}

func classRelationLine(rel models.ClassRelationship) (string, bool) {
	from, to := Sanitize(rel.From), Sanitize(rel.To)
	switch rel.Kind {
	case models.ClassInheritance:
		return from + " <|-- " + to, true
	case models.ClassAggregation:
		return from + " o-- " + to, true
	case models.ClassComposition:
		return from + " *-- " + to, true
	case models.ClassAssociation:
		low, high, ok := SplitMultiplicity(rel.Multiplicity)
		if !ok {
			return from + " --> " + to, true
		}
		return fmt.Sprintf("%s %s --> %s %s", from, quote(low), quote(high), to), true
	default:
		return "", false
	}
}

// SplitMultiplicity splits "low-high" at the first separator
func SplitMultiplicity(m string) (low, high string, ok bool) {
	low, high, ok = strings.Cut(m, MultiplicitySeparator)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(low), strings.TrimSpace(high), true
}

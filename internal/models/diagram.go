package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DiagramKind identifies which diagram a generation request produces
type DiagramKind string

const (
	KindUseCase    DiagramKind = "usecase"
	KindClass      DiagramKind = "class"
	KindSequence   DiagramKind = "sequence"
	KindDeployment DiagramKind = "deployment"
	KindFunctional DiagramKind = "functional"
	KindAgile      DiagramKind = "agile"
)

// DiagramKinds lists every kind accepted by ParseDiagramKind
var DiagramKinds = []DiagramKind{KindUseCase, KindClass, KindSequence, KindDeployment, KindFunctional, KindAgile}

// ParseDiagramKind parses a diagram kind name
func ParseDiagramKind(s string) (DiagramKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	for _, k := range DiagramKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown diagram kind %q", s)
}

// UseCaseRelation is the relationship vocabulary of use-case diagrams
type UseCaseRelation int

const (
	UseCaseUnknown UseCaseRelation = iota
	UseCaseAssociation
	UseCaseInclude
	UseCaseExtend
	UseCaseGeneralization
)

var useCaseRelationNames = map[string]UseCaseRelation{
	"Association":    UseCaseAssociation,
	"Include":        UseCaseInclude,
	"Extend":         UseCaseExtend,
	"Generalization": UseCaseGeneralization,
}

// ParseUseCaseRelation maps a relationship name to its kind; unrecognized names map to UseCaseUnknown
func ParseUseCaseRelation(s string) UseCaseRelation {
	return useCaseRelationNames[strings.TrimSpace(s)]
}

func (r UseCaseRelation) String() string {
	for name, kind := range useCaseRelationNames {
		if kind == r {
			return name
		}
	}
	return "Unknown"
}

// ClassRelation is the relationship vocabulary of class diagrams
type ClassRelation int

const (
	ClassUnknown ClassRelation = iota
	ClassAssociation
	ClassAggregation
	ClassComposition
	ClassInheritance
)

var classRelationNames = map[string]ClassRelation{
	"Association": ClassAssociation,
	"Aggregation": ClassAggregation,
	"Composition": ClassComposition,
	"Inheritance": ClassInheritance,
}

// ParseClassRelation maps a relationship name to its kind; unrecognized names map to ClassUnknown
func ParseClassRelation(s string) ClassRelation {
	return classRelationNames[strings.TrimSpace(s)]
}

func (r ClassRelation) String() string {
	for name, kind := range classRelationNames {
		if kind == r {
			return name
		}
	}
	return "Unknown"
}

// UseCaseModel represents a use-case diagram
type UseCaseModel struct {
	Actors        []string              `json:"actors"`
	UseCases      []string              `json:"use_cases"`
	Relationships []UseCaseRelationship `json:"relationships"`
}

// UnmarshalJSON accepts both "use_cases" and "useCases" for the use case list
func (m *UseCaseModel) UnmarshalJSON(data []byte) error {
	var raw struct {
		Actors        []string              `json:"actors"`
		UseCases      []string              `json:"use_cases"`
		UseCasesCamel []string              `json:"useCases"`
		Relationships []UseCaseRelationship `json:"relationships"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Actors = raw.Actors
	m.UseCases = raw.UseCases
	if m.UseCases == nil {
		m.UseCases = raw.UseCasesCamel
	}
	m.Relationships = raw.Relationships
	return nil
}

// UseCaseRelationship is encoded as [from, to, kind]
type UseCaseRelationship struct {
	From string
	To   string
	Kind UseCaseRelation
	// Name is the kind as it appeared on the wire
	Name string
}

func (r *UseCaseRelationship) UnmarshalJSON(data []byte) error {
	tuple, err := decodeTuple(data, 3, 3)
	if err != nil {
		return fmt.Errorf("use case relationship: %w", err)
	}
	r.From, r.To, r.Name = tuple[0], tuple[1], tuple[2]
	r.Kind = ParseUseCaseRelation(tuple[2])
	return nil
}

func (r UseCaseRelationship) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{r.From, r.To, r.Name})
}

// ClassModel represents a class diagram
type ClassModel struct {
	Classes       []Class             `json:"classes"`
	Relationships []ClassRelationship `json:"relationships"`
}

// Class represents one class box
type Class struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Methods    []string `json:"methods"`
}

// ClassRelationship is encoded as [from, to, kind] or [from, to, kind, multiplicity]
type ClassRelationship struct {
	From         string
	To           string
	Kind         ClassRelation
	Name         string
	Multiplicity string
}

func (r *ClassRelationship) UnmarshalJSON(data []byte) error {
	tuple, err := decodeTuple(data, 3, 4)
	if err != nil {
		return fmt.Errorf("class relationship: %w", err)
	}
	r.From, r.To, r.Name = tuple[0], tuple[1], tuple[2]
	r.Kind = ParseClassRelation(tuple[2])
	if len(tuple) == 4 {
		r.Multiplicity = tuple[3]
	}
	return nil
}

func (r ClassRelationship) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{r.From, r.To, r.Name, r.Multiplicity})
}

// SequenceModel represents a sequence diagram
type SequenceModel struct {
	Objects  []string  `json:"objects"`
	Messages []Message `json:"messages"`
}

// Message is encoded as [sender, receiver, label] or as an object
type Message struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Label    string `json:"label"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "{") {
		type plain Message
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("message: %w", err)
		}
		*m = Message(p)
		return nil
	}
	tuple, err := decodeTuple(data, 2, 3)
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	m.Sender, m.Receiver = tuple[0], tuple[1]
	if len(tuple) == 3 {
		m.Label = tuple[2]
	}
	return nil
}

// DeploymentModel represents a deployment diagram
type DeploymentModel struct {
	Components    []Component              `json:"components"`
	Relationships []DeploymentRelationship `json:"relationships"`
}

// Component represents a deployment node and the services it hosts
type Component struct {
	Name     string   `json:"name"`
	Services []string `json:"services"`
}

// DeploymentRelationship is encoded as [from, to] or [from, to, label].
// Label is nil for the two-element form.
type DeploymentRelationship struct {
	From  string
	To    string
	Label *string
}

func (r *DeploymentRelationship) UnmarshalJSON(data []byte) error {
	tuple, err := decodeTuple(data, 2, 3)
	if err != nil {
		return fmt.Errorf("deployment relationship: %w", err)
	}
	r.From, r.To = tuple[0], tuple[1]
	r.Label = nil
	if len(tuple) == 3 {
		label := tuple[2]
		r.Label = &label
	}
	return nil
}

func (r DeploymentRelationship) MarshalJSON() ([]byte, error) {
	if r.Label == nil {
		return json.Marshal([]string{r.From, r.To})
	}
	return json.Marshal([]string{r.From, r.To, *r.Label})
}

// FunctionalModel is the combined extraction for the functional flow
type FunctionalModel struct {
	Class    ClassModel    `json:"class"`
	Sequence SequenceModel `json:"sequence"`
}

// Diagram is emitted markup for one diagram kind
type Diagram struct {
	Kind   DiagramKind `json:"kind"`
	Markup string      `json:"markup"`
}

func decodeTuple(data []byte, min, max int) ([]string, error) {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return nil, err
	}
	if len(tuple) < min || len(tuple) > max {
		return nil, fmt.Errorf("expected %d to %d elements, got %d", min, max, len(tuple))
	}
	return tuple, nil
}

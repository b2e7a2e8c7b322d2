package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCaseModelAcceptsBothUseCaseKeys(t *testing.T) {
	var snake, camel UseCaseModel
	require.NoError(t, json.Unmarshal([]byte(`{"actors":["A"],"use_cases":["U"]}`), &snake))
	require.NoError(t, json.Unmarshal([]byte(`{"actors":["A"],"useCases":["U"]}`), &camel))

	assert.Equal(t, []string{"U"}, snake.UseCases)
	assert.Equal(t, []string{"U"}, camel.UseCases)
}

func TestUseCaseRelationshipTuple(t *testing.T) {
	var m UseCaseModel
	require.NoError(t, json.Unmarshal([]byte(`{
		"actors":        ["User"],
		"relationships": [["User", "Login", "Association"], ["User", "Login", "Foo"]]
	}`), &m))

	require.Len(t, m.Relationships, 2)
	assert.Equal(t, UseCaseAssociation, m.Relationships[0].Kind)
	assert.Equal(t, UseCaseUnknown, m.Relationships[1].Kind)
	assert.Equal(t, "Foo", m.Relationships[1].Name)
}

func TestRelationshipTupleTooShort(t *testing.T) {
	var m UseCaseModel
	err := json.Unmarshal([]byte(`{"relationships": [["User", "Login"]]}`), &m)
	assert.Error(t, err)

	var c ClassModel
	err = json.Unmarshal([]byte(`{"relationships": [["A"]]}`), &c)
	assert.Error(t, err)
}

func TestClassRelationshipOptionalMultiplicity(t *testing.T) {
	var m ClassModel
	require.NoError(t, json.Unmarshal([]byte(`{
		"relationships": [["A", "B", "Inheritance"], ["A", "B", "Association", "1-*"]]
	}`), &m))

	assert.Equal(t, ClassInheritance, m.Relationships[0].Kind)
	assert.Empty(t, m.Relationships[0].Multiplicity)
	assert.Equal(t, "1-*", m.Relationships[1].Multiplicity)
}

func TestMessageAcceptsTupleAndObject(t *testing.T) {
	var m SequenceModel
	require.NoError(t, json.Unmarshal([]byte(`{
		"objects":  ["A", "B"],
		"messages": [["A", "B", "ping"], {"sender": "B", "receiver": "A", "label": "pong"}]
	}`), &m))

	assert.Equal(t, []Message{
		{Sender: "A", Receiver: "B", Label: "ping"},
		{Sender: "B", Receiver: "A", Label: "pong"},
	}, m.Messages)
}

func TestDeploymentRelationshipArity(t *testing.T) {
	var m DeploymentModel
	require.NoError(t, json.Unmarshal([]byte(`{"relationships": [["A", "B"], ["A", "B", "HTTPS"]]}`), &m))

	assert.Nil(t, m.Relationships[0].Label)
	require.NotNil(t, m.Relationships[1].Label)
	assert.Equal(t, "HTTPS", *m.Relationships[1].Label)

	out, err := json.Marshal(m.Relationships)
	require.NoError(t, err)
	assert.JSONEq(t, `[["A","B"],["A","B","HTTPS"]]`, string(out))
}

func TestParseDiagramKind(t *testing.T) {
	for in, want := range map[string]DiagramKind{
		"usecase":    KindUseCase,
		"use-case":   KindUseCase,
		"Use Case":   KindUseCase,
		"CLASS":      KindClass,
		"deployment": KindDeployment,
		"functional": KindFunctional,
		"agile":      KindAgile,
		" sequence ": KindSequence,
	} {
		got, err := ParseDiagramKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDiagramKind("activity")
	assert.Error(t, err)
}

func TestRelationNames(t *testing.T) {
	assert.Equal(t, "Include", UseCaseInclude.String())
	assert.Equal(t, "Unknown", UseCaseUnknown.String())
	assert.Equal(t, "Composition", ClassComposition.String())
	assert.Equal(t, "Unknown", ClassUnknown.String())
}

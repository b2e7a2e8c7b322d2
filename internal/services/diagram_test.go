package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uml-generator/internal/diagram"
	"uml-generator/internal/models"
)

func newTestDiagramService(t *testing.T, ai Completer, renderer Renderer) (*DiagramService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "out")
	svc := NewDiagramService(ai, renderer, dir, quietLogger())
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, dir
}

var stories = []string{"As a customer, I want to place an order", "As a customer, I want to pay online"}

func TestGenerateUseCase(t *testing.T) {
	ai := &scriptedCompleter{responses: []string{"```json\n" + `{
		"actors": ["Customer"],
		"use_cases": ["Place Order", "Pay Online"],
		"relationships": [["Customer", "Place Order", "Association"], ["Place Order", "Pay Online", "Include"], ["Customer", "Pay Online", "Foo"]]
	}` + "\n```"}}
	svc, _ := newTestDiagramService(t, ai, nil)

	diagrams, err := svc.Generate(context.Background(), models.KindUseCase, stories)
	require.NoError(t, err)
	require.Len(t, diagrams, 1)

	d := diagrams[0]
	assert.Equal(t, models.KindUseCase, d.Kind)
	assert.Contains(t, d.Markup, "Customer -- Place_Order\n")
	assert.Contains(t, d.Markup, "Place_Order <. Pay_Online\n")
	assert.NotContains(t, d.Markup, "Customer -- Pay_Online")
	assert.Contains(t, ai.prompts[0], "As a customer, I want to pay online")
}

func TestGenerateClassSequenceDeployment(t *testing.T) {
	ai := &scriptedCompleter{responses: []string{
		`{"classes": [{"name": "A", "attributes": [], "methods": []}], "relationships": [["A", "A", "Association", "1-1"]]}`,
		`{"objects": ["User", "App"], "messages": [["User", "App", "open()"]]}`,
		`{"components": [{"name": "Web", "services": ["API"]}], "relationships": [["Web", "DB", "TCP"]]}`,
	}}
	svc, _ := newTestDiagramService(t, ai, nil)
	ctx := context.Background()

	class, err := svc.Generate(ctx, models.KindClass, stories)
	require.NoError(t, err)
	assert.Contains(t, class[0].Markup, "A \"1\" --> \"1\" A\n")

	seq, err := svc.Generate(ctx, models.KindSequence, stories)
	require.NoError(t, err)
	assert.Contains(t, seq[0].Markup, "User -> App: open()\n")

	dep, err := svc.Generate(ctx, models.KindDeployment, stories)
	require.NoError(t, err)
	assert.Contains(t, dep[0].Markup, "Web --> DB : TCP\n")
}

func TestGenerateFunctionalYieldsClassAndSequence(t *testing.T) {
	ai := &scriptedCompleter{responses: []string{`{
		"class": {"classes": [{"name": "Order", "attributes": ["id"], "methods": ["pay()"]}]},
		"sequence": {"objects": ["Customer", "Order"], "messages": [["Customer", "Order", "pay()"]]}
	}`}}
	svc, _ := newTestDiagramService(t, ai, nil)

	diagrams, err := svc.Generate(context.Background(), models.KindFunctional, stories)
	require.NoError(t, err)
	require.Len(t, diagrams, 2)
	assert.Equal(t, models.KindClass, diagrams[0].Kind)
	assert.Contains(t, diagrams[0].Markup, "class Order {\n  id\n  pay()\n}\n")
	assert.Equal(t, models.KindSequence, diagrams[1].Kind)
	assert.Contains(t, diagrams[1].Markup, "Customer -> Order: pay()\n")
	assert.Len(t, ai.prompts, 1)
}

func TestGenerateAgileNeedsNoStories(t *testing.T) {
	ai := &scriptedCompleter{}
	svc, _ := newTestDiagramService(t, ai, nil)

	diagrams, err := svc.Generate(context.Background(), models.KindAgile, nil)
	require.NoError(t, err)
	assert.Equal(t, diagram.AgileProcess(), diagrams[0].Markup)
	assert.Empty(t, ai.prompts)
}

func TestGenerateErrors(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestDiagramService(t, &scriptedCompleter{}, nil)
	_, err := svc.Generate(ctx, models.KindClass, nil)
	assert.ErrorIs(t, err, ErrNoStories)

	_, err = svc.Generate(ctx, models.DiagramKind("activity"), stories)
	assert.ErrorIs(t, err, ErrUnknownDiagramKind)

	svc, _ = newTestDiagramService(t, &scriptedCompleter{responses: []string{"no json here"}}, nil)
	_, err = svc.Generate(ctx, models.KindClass, stories)
	assert.ErrorIs(t, err, ErrExtractionFormat)

	svc, _ = newTestDiagramService(t, &scriptedCompleter{responses: []string{`{"relationships": []}`}}, nil)
	_, err = svc.Generate(ctx, models.KindClass, stories)
	assert.ErrorIs(t, err, ErrSchemaViolation)

	svc, _ = newTestDiagramService(t, &scriptedCompleter{err: ErrExternalService}, nil)
	_, err = svc.Generate(ctx, models.KindSequence, stories)
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestPublishWritesMarkupAndImage(t *testing.T) {
	renderer := &fakeRenderer{image: []byte("PNGDATA")}
	svc, dir := newTestDiagramService(t, &scriptedCompleter{}, renderer)
	d := models.Diagram{Kind: models.KindAgile, Markup: diagram.AgileProcess()}

	artifact, err := svc.Publish(context.Background(), d, true)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(artifact.MarkupPath))
	assert.Regexp(t, `^agile-20250102-030405-[0-9a-f]{8}\.puml$`, filepath.Base(artifact.MarkupPath))
	assert.Equal(t, strings.TrimSuffix(artifact.MarkupPath, ".puml")+".png", artifact.ImagePath)
	assert.Equal(t, d.Markup, renderer.markup)

	markup, err := os.ReadFile(artifact.MarkupPath)
	require.NoError(t, err)
	assert.Equal(t, d.Markup, string(markup))

	image, err := os.ReadFile(artifact.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(image))
	assert.Equal(t, "UE5HREFUQQ==", artifact.ImageBase64())
}

func TestPublishWithoutRender(t *testing.T) {
	renderer := &fakeRenderer{image: []byte("PNGDATA")}
	svc, _ := newTestDiagramService(t, &scriptedCompleter{}, renderer)

	artifact, err := svc.Publish(context.Background(), models.Diagram{Kind: models.KindClass, Markup: "@startuml\n@enduml\n"}, false)
	require.NoError(t, err)
	assert.Empty(t, artifact.ImagePath)
	assert.Empty(t, artifact.ImageBase64())
	assert.Empty(t, renderer.markup)
	assert.Equal(t, "QHN0YXJ0dW1sCkBlbmR1bWwK", artifact.MarkupBase64())
}

func TestPublishRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("server down")}
	svc, _ := newTestDiagramService(t, &scriptedCompleter{}, renderer)

	_, err := svc.Publish(context.Background(), models.Diagram{Kind: models.KindClass, Markup: "@startuml\n@enduml\n"}, true)
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestPublishSameSecondKeepsBothArtifacts(t *testing.T) {
	renderer := &fakeRenderer{image: []byte("PNGDATA")}
	svc, _ := newTestDiagramService(t, &scriptedCompleter{}, renderer)
	ctx := context.Background()

	first, err := svc.Publish(ctx, models.Diagram{Kind: models.KindClass, Markup: "session A"}, true)
	require.NoError(t, err)
	second, err := svc.Publish(ctx, models.Diagram{Kind: models.KindClass, Markup: "session B"}, true)
	require.NoError(t, err)

	assert.NotEqual(t, first.MarkupPath, second.MarkupPath)
	assert.NotEqual(t, first.ImagePath, second.ImagePath)

	markup, err := os.ReadFile(first.MarkupPath)
	require.NoError(t, err)
	assert.Equal(t, "session A", string(markup))

	markup, err = os.ReadFile(second.MarkupPath)
	require.NoError(t, err)
	assert.Equal(t, "session B", string(markup))
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"uml-generator/internal/diagram"
	"uml-generator/internal/helpers"
	"uml-generator/internal/models"
)

// Renderer turns PlantUML markup into an image
type Renderer interface {
	Render(ctx context.Context, markup string) ([]byte, error)
	Format() string
}

// DiagramService extracts diagram models from stories and compiles them to markup
type DiagramService struct {
	ai        Completer
	renderer  Renderer
	outputDir string
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewDiagramService creates a new diagram service. renderer may be nil, in
// which case Publish only writes markup.
func NewDiagramService(ai Completer, renderer Renderer, outputDir string, log logrus.FieldLogger) *DiagramService {
	return &DiagramService{
		ai:        ai,
		renderer:  renderer,
		outputDir: outputDir,
		log:       log.WithField("component", "diagrams"),
		now:       time.Now,
	}
}

// Generate builds the diagrams of the given kind from story texts. The
// functional kind yields a class and a sequence diagram from one extraction;
// the agile kind ignores stories.
func (s *DiagramService) Generate(ctx context.Context, kind models.DiagramKind, stories []string) ([]models.Diagram, error) {
	if kind == models.KindAgile {
		return []models.Diagram{{Kind: kind, Markup: diagram.AgileProcess()}}, nil
	}
	if len(stories) == 0 {
		return nil, ErrNoStories
	}

	switch kind {
	case models.KindUseCase:
		response, err := s.extract(ctx, kind, useCasePrompt(stories))
		if err != nil {
			return nil, err
		}
		m, err := DecodeUseCase(response)
		if err != nil {
			return nil, fmt.Errorf("use case extraction: %w", err)
		}
		s.logUnknownUseCaseRelations(m.Relationships)
		return []models.Diagram{{Kind: kind, Markup: diagram.UseCase(*m)}}, nil

	case models.KindClass:
		response, err := s.extract(ctx, kind, classPrompt(stories))
		if err != nil {
			return nil, err
		}
		m, err := DecodeClass(response)
		if err != nil {
			return nil, fmt.Errorf("class extraction: %w", err)
		}
		s.logUnknownClassRelations(m.Relationships)
		return []models.Diagram{{Kind: kind, Markup: diagram.Class(*m)}}, nil

	case models.KindSequence:
		response, err := s.extract(ctx, kind, sequencePrompt(stories))
		if err != nil {
			return nil, err
		}
		m, err := DecodeSequence(response)
		if err != nil {
			return nil, fmt.Errorf("sequence extraction: %w", err)
		}
		return []models.Diagram{{Kind: kind, Markup: diagram.Sequence(*m)}}, nil

	case models.KindDeployment:
		response, err := s.extract(ctx, kind, deploymentPrompt(stories))
		if err != nil {
			return nil, err
		}
		m, err := DecodeDeployment(response)
		if err != nil {
			return nil, fmt.Errorf("deployment extraction: %w", err)
		}
		return []models.Diagram{{Kind: kind, Markup: diagram.Deployment(*m)}}, nil

	case models.KindFunctional:
		response, err := s.extract(ctx, kind, functionalPrompt(stories))
		if err != nil {
			return nil, err
		}
		m, err := DecodeFunctional(response)
		if err != nil {
			return nil, fmt.Errorf("functional extraction: %w", err)
		}
		s.logUnknownClassRelations(m.Class.Relationships)
		return []models.Diagram{
			{Kind: models.KindClass, Markup: diagram.Class(m.Class)},
			{Kind: models.KindSequence, Markup: diagram.Sequence(m.Sequence)},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDiagramKind, kind)
}

// Publish writes the markup to the output directory and, when render is set
// and a renderer is configured, the rendered image next to it.
func (s *DiagramService) Publish(ctx context.Context, d models.Diagram, render bool) (*models.Artifact, error) {
	if err := helpers.EnsureDir(s.outputDir); err != nil {
		return nil, err
	}

	now := s.now()
	artifact := &models.Artifact{
		Kind:        d.Kind,
		Markup:      d.Markup,
		MarkupPath:  helpers.GetOutputPath(s.outputDir, helpers.GenerateOutputFilename(string(d.Kind), "puml", now)),
		GeneratedAt: now,
	}

	if err := helpers.WriteText(artifact.MarkupPath, d.Markup); err != nil {
		return nil, fmt.Errorf("failed to save markup: %w", err)
	}
	s.log.WithField("path", artifact.MarkupPath).Info("markup saved")

	if !render || s.renderer == nil {
		return artifact, nil
	}

	image, err := s.renderer.Render(ctx, d.Markup)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to render %s diagram: %w", ErrExternalService, d.Kind, err)
	}

	artifact.Image = image
	artifact.ImagePath = helpers.ReplaceExt(artifact.MarkupPath, s.renderer.Format())
	if err := helpers.WriteBytes(artifact.ImagePath, image); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	s.log.WithField("path", artifact.ImagePath).Info("image saved")

	return artifact, nil
}

func (s *DiagramService) extract(ctx context.Context, kind models.DiagramKind, prompt string) (string, error) {
	s.log.WithField("kind", kind).Debug("requesting extraction")
	response, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s extraction: %w", kind, err)
	}
	return response, nil
}

func (s *DiagramService) logUnknownUseCaseRelations(rels []models.UseCaseRelationship) {
	for _, rel := range rels {
		if rel.Kind == models.UseCaseUnknown {
			s.log.WithFields(logrus.Fields{"from": rel.From, "to": rel.To, "kind": rel.Name}).
				Debug("skipping unknown use case relationship")
		}
	}
}

func (s *DiagramService) logUnknownClassRelations(rels []models.ClassRelationship) {
	for _, rel := range rels {
		if rel.Kind == models.ClassUnknown {
			s.log.WithFields(logrus.Fields{"from": rel.From, "to": rel.To, "kind": rel.Name}).
				Debug("skipping unknown class relationship")
		}
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"uml-generator/internal/models"
)

// StoryClassifier sorts story texts into functional and non-functional buckets
// using a language model
type StoryClassifier struct {
	ai  Completer
	log logrus.FieldLogger
}

// NewStoryClassifier creates a new classifier
func NewStoryClassifier(ai Completer, log logrus.FieldLogger) *StoryClassifier {
	return &StoryClassifier{ai: ai, log: log.WithField("component", "classifier")}
}

// Classify asks the model to bucket stories. Texts the model leaves out are
// simply absent from the result.
func (c *StoryClassifier) Classify(ctx context.Context, stories []string) (*models.ClassificationResult, error) {
	if len(stories) == 0 {
		return &models.ClassificationResult{}, nil
	}

	response, err := c.ai.Complete(ctx, classifyPrompt(stories))
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	result, err := DecodeClassification(response)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	if returned := len(result.Functional) + len(result.NonFunctional); returned != len(stories) {
		c.log.WithFields(logrus.Fields{
			"sent":     len(stories),
			"returned": returned,
		}).Warn("classifier returned a different number of stories")
	}

	return result, nil
}

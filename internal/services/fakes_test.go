package services

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// scriptedCompleter replies with canned responses and records prompts
type scriptedCompleter struct {
	responses []string
	err       error
	prompts   []string
}

func (c *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", nil
	}
	next := c.responses[0]
	c.responses = c.responses[1:]
	return next, nil
}

type fakeRenderer struct {
	image  []byte
	err    error
	markup string
}

func (r *fakeRenderer) Render(ctx context.Context, markup string) ([]byte, error) {
	r.markup = markup
	return r.image, r.err
}

func (r *fakeRenderer) Format() string { return "png" }

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

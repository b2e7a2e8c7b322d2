package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"uml-generator/internal/config"
)

// ErrRenderFailed is returned when the PlantUML server cannot render a diagram
var ErrRenderFailed = errors.New("plantuml render failed")

// PlantUMLRepository handles PlantUML server interactions
type PlantUMLRepository struct {
	config *config.RendererConfig
	client *http.Client
}

// NewPlantUMLRepository creates a new PlantUML repository
func NewPlantUMLRepository(rendererConfig *config.RendererConfig) *PlantUMLRepository {
	return &PlantUMLRepository{
		config: rendererConfig,
		client: &http.Client{
			Timeout: time.Duration(rendererConfig.TimeoutSeconds) * time.Second,
		},
	}
}

// Format returns the image format the server is asked for, which is also the file extension
func (r *PlantUMLRepository) Format() string {
	return r.config.Format
}

// URL returns the server URL that renders markup
func (r *PlantUMLRepository) URL(markup string) (string, error) {
	encoded, err := Encode(markup)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(r.config.ServerURL, "/"), r.config.Format, encoded), nil
}

// Render fetches the rendered image for markup
func (r *PlantUMLRepository) Render(ctx context.Context, markup string) ([]byte, error) {
	url, err := r.URL(markup)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrRenderFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned status %d: %s", ErrRenderFailed, resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

// RenderFile renders the markup file at src into the image file at dst
func (r *PlantUMLRepository) RenderFile(ctx context.Context, src, dst string) error {
	markup, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read markup: %w", err)
	}

	image, err := r.Render(ctx, string(markup))
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, image, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

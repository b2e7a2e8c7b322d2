package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"uml-generator/internal/models"
)

var fencedJSON = regexp.MustCompile("(?s)```json[ \t]*\r?\n(.*?)\r?\n[ \t]*```")

// ExtractJSON pulls the JSON payload out of a model response. A ```json fenced
// block is tried first, then the whole response.
func ExtractJSON(response string) ([]byte, error) {
	if match := fencedJSON.FindStringSubmatch(response); match != nil {
		if payload := []byte(strings.TrimSpace(match[1])); json.Valid(payload) {
			return payload, nil
		}
	}

	payload := []byte(strings.TrimSpace(response))
	if json.Valid(payload) {
		return payload, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrExtractionFormat, truncate(response, 200))
}

// DecodeClassification parses the classifier's answer. Missing buckets decode as empty.
func DecodeClassification(response string) (*models.ClassificationResult, error) {
	var result models.ClassificationResult
	if err := decodeModel(response, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DecodeUseCase parses a use-case extraction
func DecodeUseCase(response string) (*models.UseCaseModel, error) {
	var m models.UseCaseModel
	if err := decodeModel(response, &m, "actors"); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeClass parses a class extraction
func DecodeClass(response string) (*models.ClassModel, error) {
	var m models.ClassModel
	if err := decodeModel(response, &m, "classes"); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeSequence parses a sequence extraction
func DecodeSequence(response string) (*models.SequenceModel, error) {
	var m models.SequenceModel
	if err := decodeModel(response, &m, "objects"); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeDeployment parses a deployment extraction
func DecodeDeployment(response string) (*models.DeploymentModel, error) {
	var m models.DeploymentModel
	if err := decodeModel(response, &m, "components"); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeFunctional parses the combined class and sequence extraction
func DecodeFunctional(response string) (*models.FunctionalModel, error) {
	payload, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var parts map[string]json.RawMessage
	if err := json.Unmarshal(payload, &parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	var m models.FunctionalModel
	if err := decodeRequired(parts, "class", &m.Class, "classes"); err != nil {
		return nil, err
	}
	if err := decodeRequired(parts, "sequence", &m.Sequence, "objects"); err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeRequired(parts map[string]json.RawMessage, key string, target interface{}, required ...string) error {
	raw, ok := parts[key]
	if !ok || isNull(raw) {
		return fmt.Errorf("%w: missing key %q", ErrSchemaViolation, key)
	}
	if err := decodePayload(raw, target, required...); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func decodeModel(response string, target interface{}, required ...string) error {
	payload, err := ExtractJSON(response)
	if err != nil {
		return err
	}
	return decodePayload(payload, target, required...)
}

func decodePayload(payload []byte, target interface{}, required ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return fmt.Errorf("%w: expected a JSON object: %v", ErrSchemaViolation, err)
	}
	for _, key := range required {
		if raw, ok := fields[key]; !ok || isNull(raw) {
			return fmt.Errorf("%w: missing key %q", ErrSchemaViolation, key)
		}
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

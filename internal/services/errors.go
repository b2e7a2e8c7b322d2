package services

import "errors"

// Sentinel errors for classification and diagram generation.
var (
	ErrExtractionFormat   = errors.New("response contains no parseable JSON")
	ErrSchemaViolation    = errors.New("response does not match the expected schema")
	ErrExternalService    = errors.New("external service failed")
	ErrUnknownDiagramKind = errors.New("unknown diagram kind")
	ErrNoStories          = errors.New("no stories selected")
)

package models

import (
	"encoding/base64"
	"time"
)

// Artifact represents the files produced by one generation action
type Artifact struct {
	Kind        DiagramKind `json:"kind"`
	Markup      string      `json:"markup"`
	MarkupPath  string      `json:"markup_path,omitempty"`
	ImagePath   string      `json:"image_path,omitempty"`
	Image       []byte      `json:"-"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// MarkupBase64 returns the markup encoded for download
func (a *Artifact) MarkupBase64() string {
	return base64.StdEncoding.EncodeToString([]byte(a.Markup))
}

// ImageBase64 returns the rendered image encoded for download, or "" when nothing was rendered
func (a *Artifact) ImageBase64() string {
	if len(a.Image) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(a.Image)
}

// ClassificationReport is what the classify command saves to disk
type ClassificationReport struct {
	Buckets      map[Bucket][]UserStory `json:"buckets"`
	ClassifiedAt time.Time              `json:"classified_at"`
	SourceFile   string                 `json:"source_file"`
}

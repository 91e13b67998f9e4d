package domain

import "time"

// Payload is the raw processing request as submitted by a caller. It has not
// been validated yet; the pipeline rejects malformed payloads with a
// *ValidationError before a Document is ever constructed.
type Payload struct {
	DocumentID string            `json:"document_id" yaml:"document_id"`
	Content    string            `json:"content" yaml:"content"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Document is a validated estate document. It is immutable once constructed:
// no pipeline stage mutates it, and it is owned exclusively by the processing
// run that created it. Uniqueness of ID is the caller's responsibility.
type Document struct {
	ID         string            `json:"document_id"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	UploadedAt time.Time         `json:"uploaded_at"`
}

// NewDocument builds a Document from an already validated payload. The
// metadata map is copied so later caller mutations cannot leak into the run.
func NewDocument(p Payload) Document {
	var meta map[string]string
	if len(p.Metadata) > 0 {
		meta = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			meta[k] = v
		}
	}
	return Document{
		ID:         p.DocumentID,
		Content:    p.Content,
		Metadata:   meta,
		UploadedAt: time.Now(),
	}
}

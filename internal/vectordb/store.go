// Package vectordb stores endpoint documentation as embeddings and
// answers natural-language queries against it.
package vectordb

import (
	"context"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/nlp"
)

// Document is one endpoint's searchable text plus its identity.
type Document struct {
	ID       string
	Content  string
	Metadata Metadata
}

// Metadata identifies the operation a document was built from.
type Metadata struct {
	Path    string
	Method  string
	Summary string
}

// ScoredMatch pairs a document with its similarity to the query.
type ScoredMatch struct {
	Document   Document `json:"document"`
	Similarity float32  `json:"similarity"`
}

// Store is the persistence-capable endpoint vector index.
type Store interface {
	// Add inserts or replaces documents.
	Add(ctx context.Context, docs []Document) error

	// Search returns up to limit documents most similar to the query.
	Search(ctx context.Context, query string, limit int) ([]ScoredMatch, error)

	// Persist saves the index under dir.
	Persist(ctx context.Context, dir string) error

	// Load restores the index from dir.
	Load(ctx context.Context, dir string) error

	// Count returns the number of indexed documents.
	Count() int
}

// EndpointDocuments flattens a spec into one document per operation,
// combining summary and description the way the original semantic search
// embedded them.
func EndpointDocuments(spec *apispec.Spec) []Document {
	var docs []Document
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			op := item[method]
			content := op.Summary
			if op.Description != "" {
				if content != "" {
					content += " "
				}
				content += op.Description
			}
			if content == "" {
				content = nlp.SmartDescription(path, method, op)
			}
			docs = append(docs, Document{
				ID:      method + " " + path,
				Content: content,
				Metadata: Metadata{
					Path:    path,
					Method:  method,
					Summary: op.Summary,
				},
			})
		}
	}
	return docs
}

// DefaultThreshold is the minimum similarity for a semantic match.
const DefaultThreshold = 0.5

// Semantic runs a thresholded semantic query against the store. Matches
// below the threshold are dropped; results arrive most similar first.
func Semantic(ctx context.Context, store Store, query string, limit int, threshold float32) ([]ScoredMatch, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	matches, err := store.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	kept := matches[:0]
	for _, m := range matches {
		if m.Similarity >= threshold {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

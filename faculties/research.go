package faculties

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"
)

var researchKeywords = []string{
	"research", "investigate", "find sources", "find papers", "look up",
	"deep dive", "literature", "citations", "survey the",
}

// Research answers lookup requests from an in-memory full-text index of
// previously ingested notes. With no indexed material it falls back to a
// simulated retrieval summary.
type Research struct {
	mu    sync.Mutex
	index bleve.Index
}

type researchNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewResearch creates the research faculty with an empty in-memory index.
func NewResearch() (*Research, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("research index: %w", err)
	}
	return &Research{index: index}, nil
}

func (r *Research) Name() Name { return FacultyResearch }

func (r *Research) Detect(input string) bool {
	return matchesAny(input, researchKeywords)
}

// IngestNote adds one note to the research index.
func (r *Research) IngestNote(title, body string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := "note_" + uuid.NewString()
	if err := r.index.Index(id, researchNote{Title: title, Body: body}); err != nil {
		return "", fmt.Errorf("ingest note: %w", err)
	}
	return id, nil
}

func (r *Research) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("research: input is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := bleve.NewMatchQuery(req.Input)
	search := bleve.NewSearchRequest(query)
	search.Size = 5
	search.Fields = []string{"title"}

	searchResult, err := r.index.Search(search)
	if err != nil {
		return Fail(fmt.Sprintf("research: search failed: %v", err))
	}

	hits := make([]map[string]any, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		entry := map[string]any{
			"id":    hit.ID,
			"score": hit.Score,
		}
		if title, ok := hit.Fields["title"]; ok {
			entry["title"] = title
		}
		hits = append(hits, entry)
	}

	if len(hits) == 0 {
		return Result{
			Success: true,
			Data: map[string]any{
				"hits":    []any{},
				"summary": "no indexed sources matched; queue an external retrieval pass",
			},
			Metadata: map[string]any{
				"tool":      "haystack",
				"simulated": true,
			},
		}
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"hits": hits,
		},
		Metadata: map[string]any{
			"tool":  "haystack",
			"total": searchResult.Total,
		},
	}
}

// Close releases the underlying index.
func (r *Research) Close() error {
	return r.index.Close()
}

package faculties

import (
	"context"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viterin/vek/vek32"
)

var memoryKeywords = []string{
	"remember", "recall", "memorize", "what did i say", "what did i tell",
	"don't forget", "do not forget", "forget about", "stored memories",
}

const (
	// embeddingDim is the mock embedding dimensionality. Real deployments
	// would swap embedText for a served embedding model; the store and
	// search paths are unchanged.
	embeddingDim = 64

	// memoryTopK is how many entries a recall returns at most.
	memoryTopK = 3
)

// Memory stores free-text entries per user under mock embeddings and
// answers recall queries by cosine-similarity top-k search.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	ID       string
	Text     string
	Vector   []float32
	Norm     float64
	StoredAt time.Time
}

// NewMemory creates the memory faculty.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string][]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Name() Name { return FacultyMemory }

func (m *Memory) Detect(input string) bool {
	return matchesAny(input, memoryKeywords)
}

func (m *Memory) Handle(_ context.Context, req Request) Result {
	if req.UserID == "" {
		return Fail("memory: userID is required")
	}
	if req.Input == "" {
		return Fail("memory: input is required")
	}

	if matchesAny(req.Input, []string{"recall", "what did i say", "what did i tell"}) {
		return m.recall(req.UserID, req.Input)
	}
	return m.store(req.UserID, req.Input)
}

func (m *Memory) store(userID, text string) Result {
	vector := embedText(text)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{
		ID:       "mem_" + uuid.NewString(),
		Text:     text,
		Vector:   vector,
		Norm:     vectorNorm(vector),
		StoredAt: m.now(),
	}
	m.entries[userID] = append(m.entries[userID], entry)

	return Result{
		Success: true,
		Data: map[string]any{
			"memory_id": entry.ID,
			"stored":    true,
		},
		Metadata: map[string]any{
			"tool":      "llamaindex",
			"simulated": true,
		},
	}
}

func (m *Memory) recall(userID, query string) Result {
	queryVector := embedText(query)
	queryNorm := vectorNorm(queryVector)

	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.entries[userID]
	if len(entries) == 0 {
		return Ok(map[string]any{"matches": []any{}})
	}

	type scored struct {
		text  string
		score float64
	}

	results := make([]scored, 0, len(entries))
	for _, entry := range entries {
		results = append(results, scored{
			text:  entry.Text,
			score: cosine(queryVector, queryNorm, entry.Vector, entry.Norm),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := memoryTopK
	if len(results) < limit {
		limit = len(results)
	}

	matches := make([]map[string]any, 0, limit)
	for _, result := range results[:limit] {
		matches = append(matches, map[string]any{
			"text":       result.text,
			"similarity": result.score,
		})
	}

	return Result{
		Success: true,
		Data:    map[string]any{"matches": matches},
		Metadata: map[string]any{
			"tool":      "llamaindex",
			"simulated": true,
			"searched":  len(entries),
		},
	}
}

// EntryCount reports how many memories a user has stored.
func (m *Memory) EntryCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries[userID])
}

// embedText feature-hashes tokens into a fixed-size vector. Deterministic
// so identical text always lands on an identical vector.
func embedText(text string) []float32 {
	vector := make([]float32, embeddingDim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()

		index := int(sum % embeddingDim)
		sign := float32(1)
		if sum&0x80000000 != 0 {
			sign = -1
		}
		vector[index] += sign
	}
	return vector
}

func vectorNorm(vector []float32) float64 {
	return math.Sqrt(float64(vek32.Dot(vector, vector)))
}

func cosine(a []float32, aNorm float64, b []float32, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	return float64(vek32.Dot(a, b)) / (aNorm * bNorm)
}

package memory

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/vectorstore"
)

var _ vectorstore.Storage = (*Storage)(nil)

// Storage is an immutable in-memory vector store using brute-force cosine
// similarity. It is filled once by NewStorage and only read afterwards, so
// it needs no locking.
type Storage struct {
	dimension int
	entries   []domain.FAQEntry
}

// NewStorage copies entries into a store. Every vector must have the given dimension.
func NewStorage(dimension int, entries []domain.FAQEntry) (*Storage, error) {
	if dimension < 0 {
		return nil, errors.New("invalid dimension")
	}
	cp := make([]domain.FAQEntry, len(entries))
	for i, e := range entries {
		if len(e.Vector) != dimension {
			return nil, fmt.Errorf("vector %d dimension mismatch: got %d, want %d", i, len(e.Vector), dimension)
		}
		e.Vector = append([]float64(nil), e.Vector...)
		cp[i] = e
	}
	return &Storage{dimension: dimension, entries: cp}, nil
}

func (s *Storage) Dimension() int { return s.dimension }

func (s *Storage) Len() int { return len(s.entries) }

// Questions returns up to limit questions in index order; limit <= 0 means all.
func (s *Storage) Questions(limit int) []string {
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]string, n)
	for i := range out {
		out[i] = s.entries[i].Question
	}
	return out
}

// Best returns the entry with maximum cosine similarity to vector. Ties go to
// the lowest index. ok is false when the store is empty.
func (s *Storage) Best(vector []float64) (best domain.ScoredEntry, ok bool) {
	for i := range s.entries {
		score := Cosine(s.entries[i].Vector, vector)
		if !ok || score > best.Score {
			best = domain.ScoredEntry{Index: i, Entry: s.entries[i], Score: score}
			ok = true
		}
	}
	return best, ok
}

// Search ranks every entry by similarity, highest first, index order on ties.
func (s *Storage) Search(vector []float64, topK int) []domain.ScoredEntry {
	if topK <= 0 {
		topK = 5
	}
	scored := make([]domain.ScoredEntry, len(s.entries))
	for i := range s.entries {
		scored[i] = domain.ScoredEntry{Index: i, Entry: s.entries[i], Score: Cosine(s.entries[i].Vector, vector)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}

// Cosine returns dot(a,b)/(|a||b|), or 0 when either vector has zero norm.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, x := range a {
		na += x * x
	}
	for _, x := range b {
		nb += x * x
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

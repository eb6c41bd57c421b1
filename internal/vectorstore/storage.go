package vectorstore

import "insurance-advisor/internal/domain"

// Storage is the read-only similarity search the matcher depends on.
type Storage interface {
	Len() int
	Dimension() int
	Best(vector []float64) (domain.ScoredEntry, bool)
	Search(vector []float64, topK int) []domain.ScoredEntry
}

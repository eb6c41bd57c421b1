// Package faqindex reads and writes the pre-built FAQ index bundle: the
// frozen TF-IDF vectorizer plus index-aligned questions, answers and vectors.
package faqindex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/embedding/tfidf"
	"insurance-advisor/internal/vectorstore/memory"
)

// Bundle is the serialised index. Position i of Questions, Answers and
// Vectors describes the same FAQ entry; that position is the index order
// used for tie-breaks.
type Bundle struct {
	Vectorizer tfidf.State `json:"vectorizer"`
	Questions  []string    `json:"questions"`
	Answers    []string    `json:"answers"`
	Vectors    [][]float64 `json:"vectors"`
}

// Index is a loaded, validated bundle ready for querying.
type Index struct {
	Vectorizer *tfidf.Vectorizer
	Store      *memory.Storage
}

// SourceEntry is one FAQ in the YAML source consumed by Build.
type SourceEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Load reads and validates a bundle from path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open faq index: %w", err)
	}
	defer f.Close()
	idx, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("faq index %s: %w", path, err)
	}
	return idx, nil
}

// Decode parses a JSON bundle and validates its shape.
func Decode(r io.Reader) (*Index, error) {
	var b Bundle
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return b.Index()
}

// Index validates the bundle and builds the queryable form.
func (b *Bundle) Index() (*Index, error) {
	n := len(b.Questions)
	if len(b.Answers) != n {
		return nil, fmt.Errorf("answer count %d does not match question count %d", len(b.Answers), n)
	}
	if len(b.Vectors) != n {
		return nil, fmt.Errorf("vector count %d does not match question count %d", len(b.Vectors), n)
	}
	vec, err := tfidf.FromState(b.Vectorizer)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.FAQEntry, n)
	for i := range b.Questions {
		entries[i] = domain.FAQEntry{Question: b.Questions[i], Answer: b.Answers[i], Vector: b.Vectors[i]}
	}
	store, err := memory.NewStorage(vec.Dimension(), entries)
	if err != nil {
		return nil, err
	}
	return &Index{Vectorizer: vec, Store: store}, nil
}

// Build fits a vectorizer over the questions and vectorises each of them.
// An empty source yields a valid empty bundle.
func Build(src []SourceEntry) (*Bundle, error) {
	b := &Bundle{
		Questions: make([]string, 0, len(src)),
		Answers:   make([]string, 0, len(src)),
		Vectors:   make([][]float64, 0, len(src)),
	}
	if len(src) == 0 {
		return b, nil
	}
	for _, e := range src {
		b.Questions = append(b.Questions, e.Question)
		b.Answers = append(b.Answers, e.Answer)
	}
	vec, err := tfidf.Fit(b.Questions)
	if err != nil {
		return nil, err
	}
	for _, q := range b.Questions {
		b.Vectors = append(b.Vectors, vec.Transform(q))
	}
	b.Vectorizer = vec.State()
	return b, nil
}

// Save writes the bundle as JSON, creating directories as needed.
func (b *Bundle) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSource reads the YAML FAQ source list.
func LoadSource(path string) ([]SourceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var src []SourceEntry
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse faq source %s: %w", path, err)
	}
	for i, e := range src {
		if e.Question == "" || e.Answer == "" {
			return nil, fmt.Errorf("faq source %s: entry %d needs both question and answer", path, i)
		}
	}
	return src, nil
}

package tfidf

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"

	"insurance-advisor/internal/domain"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// State is the frozen, serialisable form of a fitted vectorizer.
// Terms[i] owns dimension i and IDF[i] is its weight.
type State struct {
	Terms []string  `json:"terms"`
	IDF   []float64 `json:"idf"`
}

// Vectorizer implements a TF-IDF transform.
// Its vocabulary and IDF values are fixed once fitted.
type Vectorizer struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	stopwords  map[string]struct{}
}

// Fit builds the vocabulary and IDF values from the provided corpus.
func Fit(corpus []string) (*Vectorizer, error) {
	if len(corpus) == 0 {
		return nil, errors.New("empty corpus for TF-IDF fit")
	}
	stop := defaultStopwords()
	// Build vocabulary and document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(text, stop) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return nil, errors.New("no tokens found in corpus; ensure tokenizer supports your language")
	}
	idf := make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		// Smoothed IDF
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return FromState(State{Terms: terms, IDF: idf})
}

// FromState restores a vectorizer from a previously fitted State.
func FromState(st State) (*Vectorizer, error) {
	if len(st.Terms) != len(st.IDF) {
		return nil, fmt.Errorf("tfidf state mismatch: %d terms, %d idf weights", len(st.Terms), len(st.IDF))
	}
	vocab := make(map[string]int, len(st.Terms))
	for i, term := range st.Terms {
		if _, dup := vocab[term]; dup {
			return nil, fmt.Errorf("tfidf state has duplicate term %q", term)
		}
		vocab[term] = i
	}
	return &Vectorizer{
		vocabulary: vocab,
		terms:      append([]string(nil), st.Terms...),
		idf:        append([]float64(nil), st.IDF...),
		stopwords:  defaultStopwords(),
	}, nil
}

// State returns a copy of the frozen vocabulary and weights.
func (v *Vectorizer) State() State {
	return State{
		Terms: append([]string(nil), v.terms...),
		IDF:   append([]float64(nil), v.idf...),
	}
}

// Dimension returns the dimensionality of the produced vectors.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// Transform computes the L2-normalised TF-IDF vector for text.
// Text without any known term maps to the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.terms))
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokenize(text, v.stopwords) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = tfv * v.idf[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func tokenize(text string, stopwords map[string]struct{}) []string {
	raw := tokenPattern.FindAllString(domain.Fold(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"i", "my", "me", "do", "does", "how", "what", "which",
		// French
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "en", "au", "aux", "ce", "ces", "est", "sont", "je", "tu", "il", "elle", "nous", "vous", "mon", "ma", "mes", "votre", "vos", "pour", "par", "sur", "dans", "avec", "que", "qui", "quoi", "quel", "quelle", "comment",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Package bigram implements a word-pair text generator.
//
// A Model counts how often each word follows another in its training text
// and continues a seed word by sampling successors in proportion to those
// counts. Training happens once at startup; Generate is safe for concurrent
// use afterwards.
package bigram

import (
	"math/rand/v2"
	"strings"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// UnknownSeedResponse is returned when the seed word never appeared in training.
const UnknownSeedResponse = "I don't know how to respond to that."

// Corpus is the paragraph the calculator's model is trained on.
const Corpus = `
Sadhak Calculator is a versatile tool for mathematical and statistical calculations.
It can perform basic arithmetic operations like addition, subtraction, multiplication, and division.
The calculator also handles more complex tasks such as calculating mean, median, and mode.
For statistical analysis, users can input data into a table to compute various measures.
Sadhak Calculator aims to be user-friendly and efficient for both simple and advanced calculations.
`

// successors keeps follow-up words in first-seen order with their counts.
type successors struct {
	words  []string
	counts []float64
	index  map[string]int
}

func (s *successors) add(word string) {
	if i, ok := s.index[word]; ok {
		s.counts[i]++
		return
	}
	s.index[word] = len(s.words)
	s.words = append(s.words, word)
	s.counts = append(s.counts, 1)
}

// Model is a bigram frequency table
type Model struct {
	next map[string]*successors

	// src is nil for the shared global source; a private source is not safe
	// for concurrent use and is guarded by mu.
	src rand.Source
	mu  sync.Mutex
}

// Option configures a Model
type Option func(*Model)

// WithSource makes sampling deterministic
func WithSource(src rand.Source) Option {
	return func(m *Model) {
		m.src = src
	}
}

// New creates an empty model
func New(opts ...Option) *Model {
	m := &Model{next: make(map[string]*successors)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTrained creates a model trained on Corpus
func NewTrained(opts ...Option) *Model {
	m := New(opts...)
	m.Train(Corpus)
	return m
}

// Train lower-cases text, splits it on whitespace and counts every adjacent
// word pair. Punctuation stays attached to words.
func (m *Model) Train(text string) {
	words := strings.Fields(strings.ToLower(text))
	for i := 0; i+1 < len(words); i++ {
		s, ok := m.next[words[i]]
		if !ok {
			s = &successors{index: make(map[string]int)}
			m.next[words[i]] = s
		}
		s.add(words[i+1])
	}
}

// Vocabulary returns the number of words with at least one successor
func (m *Model) Vocabulary() int {
	return len(m.next)
}

// Successors returns the follow-up counts recorded for word
func (m *Model) Successors(word string) map[string]int {
	s, ok := m.next[strings.ToLower(word)]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(s.words))
	for i, w := range s.words {
		out[w] = int(s.counts[i])
	}
	return out
}

// Generate walks the table from seed for at most length words, stopping
// early at a word with no recorded successor. Lengths below one are treated
// as one.
func (m *Model) Generate(seed string, length int) string {
	word := strings.ToLower(strings.TrimSpace(seed))
	if _, ok := m.next[word]; !ok {
		return UnknownSeedResponse
	}
	if length < 1 {
		length = 1
	}

	result := make([]string, 1, length)
	result[0] = word
	for len(result) < length {
		s, ok := m.next[result[len(result)-1]]
		if !ok {
			break
		}
		result = append(result, s.words[m.sample(s.counts)])
	}
	return strings.Join(result, " ")
}

func (m *Model) sample(weights []float64) int {
	if len(weights) == 1 {
		return 0
	}
	if m.src == nil {
		return int(distuv.NewCategorical(weights, nil).Rand())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int(distuv.NewCategorical(weights, m.src).Rand())
}

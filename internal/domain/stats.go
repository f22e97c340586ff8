// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// NullLanguage is the key used for repositories that declare no primary language.
// It matches what a JSON encoder writes for a null object key.
const NullLanguage = "null"

// ErrRateLimited is wrapped by searchers when GitHub rejects a request because
// the caller exceeded its quota.
var ErrRateLimited = errors.New("github rate limit exceeded")

// RepoSummary is the slice of a search hit this application cares about.
type RepoSummary struct {
	FullName string
	Language *string
}

// LanguageKey returns the frequency map key for the repository.
func (r RepoSummary) LanguageKey() string {
	if r.Language == nil {
		return NullLanguage
	}
	return *r.Language
}

// FrequencyMap counts repositories per primary language.
// It remembers the order in which languages were first seen, which is the
// tie-breaking order used when ranking and the key order used when encoding.
// The zero value is an empty map ready to use.
type FrequencyMap struct {
	counts map[string]int
	order  []string
}

// NewFrequencyMap creates an empty FrequencyMap.
func NewFrequencyMap() *FrequencyMap {
	return &FrequencyMap{counts: make(map[string]int)}
}

// Increment adds one to the count for lang.
func (f *FrequencyMap) Increment(lang string) {
	f.add(lang, 1)
}

func (f *FrequencyMap) add(lang string, n int) {
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	if _, ok := f.counts[lang]; !ok {
		f.order = append(f.order, lang)
	}
	f.counts[lang] += n
}

// Count returns the count for lang, or zero if it was never seen.
func (f *FrequencyMap) Count(lang string) int {
	if f == nil {
		return 0
	}
	return f.counts[lang]
}

// Len returns the number of distinct languages.
func (f *FrequencyMap) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Languages returns the languages in first-seen order.
func (f *FrequencyMap) Languages() []string {
	if f == nil {
		return []string{}
	}
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Total returns the sum of all counts.
func (f *FrequencyMap) Total() int {
	total := 0
	for _, lang := range f.Languages() {
		total += f.counts[lang]
	}
	return total
}

// ToMap returns a plain copy of the counts.
func (f *FrequencyMap) ToMap() map[string]int {
	out := make(map[string]int, f.Len())
	for _, lang := range f.Languages() {
		out[lang] = f.counts[lang]
	}
	return out
}

// MarshalJSON encodes the map as a JSON object with keys in first-seen order.
func (f *FrequencyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lang := range f.Languages() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lang)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(f.counts[lang]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of language counts, keeping document order.
func (f *FrequencyMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("frequency map must be a JSON object, got %v", tok)
	}
	decoded := NewFrequencyMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		lang, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("invalid count for %q: %w", lang, err)
		}
		if _, seen := decoded.counts[lang]; seen {
			decoded.counts[lang] = n
			continue
		}
		decoded.add(lang, n)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = *decoded
	return nil
}

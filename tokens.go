package ring

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TOKEN RINGS
// ═══════════════════════════════════════════════════════════════════════════════
// A common use of a ring is a rotating buffer of words: a round-robin of
// keywords, a cycling list of search terms. Raw text makes poor keys, so it is
// first run through a small analysis pipeline:
//
//  1. Tokenization      → split on anything that is not a letter or digit
//  2. Lowercasing       → "Quick" → "quick"
//  3. Stop word removal → drop "the", "a", "of", ...
//  4. Length filtering  → drop tokens shorter than MinTokenLength
//  5. Stemming          → "running" → "run" (Snowball English)
//
// EXAMPLE:
// --------
// NewTokenRing("The foxes are Running!", DefaultAnalyzerConfig())
//
//	tokenize:  ["The", "foxes", "are", "Running"]
//	lowercase: ["the", "foxes", "are", "running"]
//	stopwords: ["foxes", "running"]
//	stem:      ["fox", "run"]
//
// ring: anchor=[fox] -> [run]
//
// ContainsTerm applies the same pipeline to the query term, so asking for
// "RUNS" finds "run".
// ═══════════════════════════════════════════════════════════════════════════════

// AnalyzerConfig controls how text is turned into ring keys
type AnalyzerConfig struct {
	MinTokenLength  int  // Minimum token length to keep (default: 2)
	EnableStemming  bool // Whether to apply stemming (default: true)
	EnableStopwords bool // Whether to remove stopwords (default: true)
}

// DefaultAnalyzerConfig returns the standard analyzer configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MinTokenLength:  2,
		EnableStemming:  true,
		EnableStopwords: true,
	}
}

// Analyze turns text into tokens with the default configuration
func Analyze(text string) []string {
	return AnalyzeWithConfig(text, DefaultAnalyzerConfig())
}

// AnalyzeWithConfig turns text into tokens
func AnalyzeWithConfig(text string, config AnalyzerConfig) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.ToLower(field)
		if config.EnableStopwords && isStopword(token) {
			continue
		}
		if len(token) < config.MinTokenLength {
			continue
		}
		if config.EnableStemming {
			token = snowballeng.Stem(token, false)
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// NewTokenRing builds a ring of the analyzed tokens of text, in text order
func NewTokenRing(text string, config AnalyzerConfig, opts ...Option) *Ring[string] {
	return From(AnalyzeWithConfig(text, config), opts...)
}

// ContainsTerm reports whether the analyzed form of term is in r.
// A term that analyzes to nothing (a stopword, say) is never found.
func ContainsTerm(r *Ring[string], term string, config AnalyzerConfig) bool {
	tokens := AnalyzeWithConfig(term, config)
	if len(tokens) != 1 {
		return false
	}
	return r.Contains(tokens[0])
}

func isStopword(token string) bool {
	_, exists := englishStopwords[token]
	return exists
}

// englishStopwords uses struct{} values: 0 bytes per entry
var englishStopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "before": {}, "being": {}, "but": {}, "by": {}, "can": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"had": {}, "has": {}, "have": {}, "he": {}, "her": {}, "him": {},
	"his": {}, "how": {}, "i": {}, "if": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "just": {}, "me": {}, "more": {},
	"most": {}, "my": {}, "no": {}, "not": {}, "of": {}, "on": {},
	"one": {}, "only": {}, "or": {}, "other": {}, "our": {}, "out": {},
	"over": {}, "she": {}, "so": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "to": {}, "too": {},
	"under": {}, "up": {}, "very": {}, "was": {}, "we": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "who": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
}

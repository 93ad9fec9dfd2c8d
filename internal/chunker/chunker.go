// ABOUTME: Chunker splits document text into overlapping, sentence-aware segments
// ABOUTME: Sizes are given in approximate tokens (4 chars per token)
package chunker

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Trppypata/master-plumbing-study/internal/faults"
)

const (
	// DefaultChunkSize is the default chunk size in approximate tokens.
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the default overlap between chunks in tokens.
	DefaultChunkOverlap = 50
	// CharsPerToken is the character-to-token approximation used throughout.
	CharsPerToken = 4

	// Sentence boundary search neighborhood around the nominal cut point.
	boundaryLookBehind = 200
	boundaryLookAhead  = 100
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	sentenceEnd   = regexp.MustCompile(`[.!?]\s`)
	pageMarker    = regexp.MustCompile(`(?i)\[PAGE\s+(\d+)\]`)
)

// Chunk is one emitted text segment. Index counts from 0 in emission order.
type Chunk struct {
	Content    string `json:"content"`
	Index      int    `json:"index"`
	PageNumber *int   `json:"page_number,omitempty"`
}

// Chunker splits normalized text into overlapping windows, preferring to cut
// at sentence boundaries near the nominal window edge.
type Chunker struct {
	chunkChars   int
	overlapChars int
}

// New creates a Chunker with sizes in tokens. The overlap must leave a
// positive step size or the configuration is rejected.
func New(chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, &faults.ValidationError{Field: "chunk size", Message: "must be positive"}
	}
	if chunkOverlap < 0 {
		return nil, &faults.ValidationError{Field: "chunk overlap", Message: "must not be negative"}
	}
	if chunkOverlap >= chunkSize {
		return nil, &faults.ValidationError{Field: "chunk overlap", Message: "must be smaller than chunk size"}
	}
	return &Chunker{
		chunkChars:   chunkSize * CharsPerToken,
		overlapChars: chunkOverlap * CharsPerToken,
	}, nil
}

// Default returns a Chunker with the default 500/50 token configuration.
func Default() *Chunker {
	c, err := New(DefaultChunkSize, DefaultChunkOverlap)
	if err != nil {
		panic(err) // defaults are always valid
	}
	return c
}

// Split chunks text into overlapping segments. Whitespace runs are collapsed
// before chunking. Empty input yields no chunks; input at or under the chunk
// size yields exactly one.
func (c *Chunker) Split(text string) []Chunk {
	cleaned := Normalize(text)
	if cleaned == "" {
		return nil
	}

	if len(cleaned) <= c.chunkChars {
		return []Chunk{{Content: cleaned, Index: 0}}
	}

	step := c.chunkChars - c.overlapChars
	if step < 1 {
		step = 1
	}

	var chunks []Chunk
	index := 0

	for position := 0; position < len(cleaned); position += step {
		end := position + c.chunkChars

		// Prefer a sentence boundary near the nominal cut point.
		if end < len(cleaned) {
			searchStart := position + c.chunkChars - boundaryLookBehind
			if searchStart < position {
				searchStart = position
			}
			searchEnd := end + boundaryLookAhead
			if searchEnd > len(cleaned) {
				searchEnd = len(cleaned)
			}
			if loc := sentenceEnd.FindStringIndex(cleaned[searchStart:searchEnd]); loc != nil {
				end = searchStart + loc[0] + 2
			}
			// A cut before the next window start would skip the text in
			// between when the overlap is smaller than the look-behind.
			if next := position + step; end < next {
				end = next
			}
		}

		if end > len(cleaned) {
			end = len(cleaned)
		}

		content := strings.TrimSpace(cleaned[position:end])
		if content == "" {
			continue
		}

		chunks = append(chunks, Chunk{Content: content, Index: index})
		index++
	}

	return chunks
}

// SplitPages chunks text containing [PAGE N] markers. Each page is chunked
// independently; indices are renumbered globally and every chunk keeps its
// page number. Text before the first marker belongs to page 1.
func (c *Chunker) SplitPages(text string) []Chunk {
	pages := splitByPageMarkers(text)

	var all []Chunk
	globalIndex := 0

	for _, page := range pages {
		pageNum := page.number
		for _, chunk := range c.Split(page.content) {
			all = append(all, Chunk{
				Content:    chunk.Content,
				Index:      globalIndex,
				PageNumber: &pageNum,
			})
			globalIndex++
		}
	}

	return all
}

// HasPageMarkers reports whether text contains [PAGE N] markers.
func HasPageMarkers(text string) bool {
	return pageMarker.MatchString(text)
}

// Normalize collapses whitespace runs to single spaces and trims the ends.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// EstimateTokens approximates the token count of text.
func EstimateTokens(text string) int {
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}

type pageText struct {
	number  int
	content string
}

func splitByPageMarkers(text string) []pageText {
	matches := pageMarker.FindAllStringSubmatchIndex(text, -1)

	var pages []pageText
	lastIndex := 0
	currentPage := 1

	for _, m := range matches {
		if lastIndex < m[0] {
			pages = append(pages, pageText{number: currentPage, content: text[lastIndex:m[0]]})
		}
		if n, err := strconv.Atoi(text[m[2]:m[3]]); err == nil {
			currentPage = n
		}
		lastIndex = m[1]
	}

	if lastIndex < len(text) {
		pages = append(pages, pageText{number: currentPage, content: text[lastIndex:]})
	}

	return pages
}

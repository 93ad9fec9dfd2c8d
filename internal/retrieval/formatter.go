// ABOUTME: Turns ranked search results into a prompt-ready context block
// ABOUTME: Citation strings align positionally with the formatted sources
package retrieval

import (
	"fmt"
	"strings"

	"github.com/Trppypata/master-plumbing-study/internal/models"
)

// blockSeparator joins source blocks so consumers can re-split them for
// citation alignment.
const blockSeparator = "\n\n---\n\n"

// contextHeader introduces the assembled context in the downstream prompt.
const contextHeader = "Relevant context from uploaded documents:\n\n"

// FormatContext assembles search results into a labeled context block for
// prompt construction. An empty result set yields an empty string; callers
// must treat that as "no context available" and omit it from the prompt.
func FormatContext(results []models.SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	blocks := make([]string, len(results))
	for i, r := range results {
		pageInfo := ""
		if r.PageNumber != nil {
			pageInfo = fmt.Sprintf(" (Page %d)", *r.PageNumber)
		}
		blocks[i] = fmt.Sprintf("[Source %d: %s%s]\n%s", i+1, r.DocumentName, pageInfo, r.Content)
	}

	return contextHeader + strings.Join(blocks, blockSeparator)
}

// Citations produces one citation string per result, in result order, so a
// caller can cite sources positionally alongside the formatted context.
func Citations(results []models.SearchResult) []string {
	citations := make([]string, len(results))
	for i, r := range results {
		pageInfo := ""
		if r.PageNumber != nil {
			pageInfo = fmt.Sprintf(", Page %d", *r.PageNumber)
		}
		citations[i] = r.DocumentName + pageInfo
	}
	return citations
}

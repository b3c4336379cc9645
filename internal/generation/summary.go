package generation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	summaryMaxSentences = 5
	summaryMaxKeywords  = 5
)

// SummaryTranscriber is the default heuristic transcriber. It extracts the
// leading sentences of the content and the most frequent keywords, producing
// a transcript of the form "Summary: ...\nKeywords: a, b, c".
type SummaryTranscriber struct{}

// NewSummaryTranscriber creates a new heuristic transcriber.
func NewSummaryTranscriber() *SummaryTranscriber {
	return &SummaryTranscriber{}
}

// Ensure SummaryTranscriber implements Transcriber.
var _ Transcriber = (*SummaryTranscriber)(nil)

// Transcribe implements the Transcriber interface.
func (t *SummaryTranscriber) Transcribe(_ context.Context, content string) (string, error) {
	normalized := strings.Join(strings.Fields(content), " ")
	if normalized == "" {
		return "", nil
	}

	sentences := splitSentences(normalized)
	if len(sentences) > summaryMaxSentences {
		sentences = sentences[:summaryMaxSentences]
	}

	keywords := topKeywords(normalized, summaryMaxKeywords)

	return fmt.Sprintf("Summary: %s\nKeywords: %s",
		strings.Join(sentences, " "),
		strings.Join(keywords, ", ")), nil
}

// splitSentences splits text into sentences terminated by '.', '!' or '?'.
// A trailing fragment without a terminator counts as a sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentence := strings.TrimSpace(text[start : i+1])
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = i + 1
		}
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}

// topKeywords returns the up-to-n most frequent lowercase alphanumeric words
// in the text, ties broken by first occurrence.
func topKeywords(text string, n int) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, text)

	var order []string
	counts := make(map[string]int)
	for _, word := range strings.Fields(cleaned) {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}

	return order
}

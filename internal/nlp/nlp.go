// Package nlp contains the lightweight text heuristics used to summarize
// and describe API specs: no models, just sentence and frequency analysis.
package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/specdoc/specdoc/internal/apispec"
)

const maxSummaryLength = 250

var stopwords = func() map[string]bool {
	words := strings.Fields("a an and are as at be by for from has have how i if in into is it its of on or that the their them they this to was were what when where which who will with you your")
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

var (
	sentenceEnd = regexp.MustCompile(`(?s)^(.*?[.!?])\s`)
	wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9_-]+`)
)

// firstSentence returns the text up to and including the first sentence
// terminator, or the whole text when there is none.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if m := sentenceEnd.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// Summarize produces a one-line extract of the text: the first sentence,
// unless it is too short to stand alone, in which case the text is clipped.
func Summarize(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return "No description available."
	}
	s := firstSentence(t)
	if len([]rune(s)) < 30 {
		clipped := []rune(t)
		if len(clipped) > maxSummaryLength {
			clipped = clipped[:maxSummaryLength]
		}
		return strings.TrimRight(string(clipped), " ")
	}
	return s
}

// Keywords returns the topK most frequent meaningful words of the text,
// lowercased. Ties break alphabetically so output is deterministic.
func Keywords(text string, topK int) []string {
	if topK <= 0 {
		topK = 6
	}
	freq := map[string]int{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if stopwords[w] || len(w) < 3 {
			continue
		}
		freq[w]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > topK {
		words = words[:topK]
	}
	return words
}

// CollectDescriptions gathers every description (falling back to summary)
// in the spec into one blob for overview summarization.
func CollectDescriptions(spec *apispec.Spec) string {
	var chunks []string
	if spec.Info.Description != "" {
		chunks = append(chunks, spec.Info.Description)
	}
	for _, path := range spec.SortedPaths() {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			op := item[method]
			if text := firstNonEmpty(op.Description, op.Summary); text != "" {
				chunks = append(chunks, text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, " "))
}

// SmartDescription builds a usable description for an operation that lacks
// one, assembled from whatever metadata the spec does carry.
func SmartDescription(path, method string, op apispec.Operation) string {
	if op.Description != "" {
		return op.Description
	}
	if op.Summary != "" {
		return op.Summary
	}

	var parts []string
	if op.OperationID != "" {
		parts = append(parts, "Operation ID: "+op.OperationID)
	}
	if len(op.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(op.Tags, ", "))
	}
	if len(op.Parameters) > 0 {
		names := make([]string, len(op.Parameters))
		for i, p := range op.Parameters {
			names[i] = p.Name
		}
		parts = append(parts, "parameters: "+strings.Join(names, ", "))
	}
	if len(op.RequestBody) > 0 {
		names := make([]string, len(op.RequestBody))
		for i, f := range op.RequestBody {
			names[i] = f.Name
		}
		parts = append(parts, "request fields: "+strings.Join(names, ", "))
	}

	method = strings.ToUpper(method)
	if len(parts) == 0 {
		return fmt.Sprintf("%s %s → No description available", method, path)
	}
	return fmt.Sprintf("%s %s → %s", method, path, strings.Join(parts, "; "))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package chat answers questions about the currently loaded API spec.
// Classification and answers are rule-based over the normalized spec; an
// optional LLM answerer refines the reply when configured.
package chat

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/specdoc/specdoc/internal/apispec"
	"github.com/specdoc/specdoc/internal/nlp"
	"github.com/specdoc/specdoc/internal/search"
)

// Intent labels what the user is asking about.
type Intent string

const (
	IntentAuthentication Intent = "Authentication"
	IntentEndpoints      Intent = "Endpoints"
	IntentParameters     Intent = "Parameters"
	IntentExample        Intent = "Example"
	IntentOverview       Intent = "Overview"
	IntentSearch         Intent = "Search"
)

// Snippet is a sample request for one endpoint.
type Snippet struct {
	Endpoint string            `json:"endpoint"`
	Method   string            `json:"method"`
	Headers  map[string]string `json:"headers,omitempty"`
	Body     map[string]any    `json:"body,omitempty"`
}

// Response is the bot's answer to one message.
type Response struct {
	Intent      Intent   `json:"intent"`
	Answer      string   `json:"answer"`
	CodeSnippet *Snippet `json:"code_snippet,omitempty"`
	Summary     string   `json:"summary,omitempty"`
}

// Answerer produces a free-form answer from the summary document and a
// question. Implemented by the OpenAI client; nil means rule-based only.
type Answerer interface {
	Answer(ctx context.Context, summaryDoc, question string) (string, error)
}

// Bot replies to spec questions.
type Bot struct {
	answerer Answerer
}

// NewBot creates a Bot. answerer may be nil.
func NewBot(answerer Answerer) *Bot {
	return &Bot{answerer: answerer}
}

// Reply answers one message about the spec. It never fails: with no spec
// loaded it explains that, and answerer errors fall back to the
// rule-based reply.
func (b *Bot) Reply(ctx context.Context, spec *apispec.Spec, summaryDoc, message string) Response {
	if spec == nil {
		return Response{
			Intent: IntentOverview,
			Answer: "No API spec has been uploaded yet. Upload a spec first, then ask me about its endpoints, parameters, or authentication.",
		}
	}

	intent := classify(message)
	resp := b.ruleBasedReply(spec, intent, message)

	if b.answerer != nil {
		answer, err := b.answerer.Answer(ctx, summaryDoc, message)
		if err != nil {
			log.Printf("chat: answerer failed, using rule-based reply: %v", err)
		} else if answer != "" {
			resp.Answer = answer
		}
	}
	return resp
}

var intentKeywords = []struct {
	intent Intent
	words  []string
}{
	{IntentAuthentication, []string{"auth", "login", "token", "credential", "api key", "apikey", "bearer", "oauth"}},
	{IntentExample, []string{"example", "sample", "snippet", "how do i call", "curl"}},
	{IntentParameters, []string{"param", "argument", "field", "query string", "request body"}},
	{IntentEndpoints, []string{"endpoint", "path", "route", "method", "operation"}},
	{IntentOverview, []string{"overview", "about", "what is", "what does", "describe"}},
}

// classify picks the first intent whose keywords appear in the message.
func classify(message string) Intent {
	msg := strings.ToLower(message)
	for _, entry := range intentKeywords {
		for _, w := range entry.words {
			if strings.Contains(msg, w) {
				return entry.intent
			}
		}
	}
	return IntentSearch
}

func (b *Bot) ruleBasedReply(spec *apispec.Spec, intent Intent, message string) Response {
	switch intent {
	case IntentAuthentication:
		return authReply(spec)
	case IntentExample:
		return exampleReply(spec, message)
	case IntentParameters:
		return parametersReply(spec, message)
	case IntentEndpoints:
		return endpointsReply(spec)
	case IntentOverview:
		return overviewReply(spec)
	default:
		return searchReply(spec, message)
	}
}

func authReply(spec *apispec.Spec) Response {
	schemes := spec.Components.SecuritySchemes
	if len(schemes) == 0 && !spec.GlobalSecurity {
		return Response{
			Intent:  IntentAuthentication,
			Answer:  "This API defines no global authentication. Endpoints may be public or declare their own security.",
			Summary: "No authentication scheme found in the spec.",
		}
	}

	var parts []string
	for _, name := range sortedKeys(schemes) {
		s := schemes[name]
		desc := fmt.Sprintf("%s (type %s", name, s.Type)
		if s.Scheme != "" {
			desc += ", scheme " + s.Scheme
		}
		desc += ")"
		parts = append(parts, desc)
	}
	answer := "Authentication schemes: " + strings.Join(parts, "; ") + "."
	if spec.GlobalSecurity {
		answer += " A global security requirement applies, so requests need credentials by default."
	}
	return Response{
		Intent:  IntentAuthentication,
		Answer:  answer,
		Summary: "How to authenticate against this API.",
	}
}

func endpointsReply(spec *apispec.Spec) Response {
	paths := spec.SortedPaths()
	if len(paths) == 0 {
		return Response{Intent: IntentEndpoints, Answer: "The spec defines no endpoints."}
	}

	var lines []string
	for _, path := range paths {
		item := spec.Paths[path]
		for _, method := range item.SortedMethods() {
			op := item[method]
			line := strings.ToUpper(method) + " " + path
			if op.Summary != "" {
				line += " — " + op.Summary
			}
			lines = append(lines, line)
		}
	}
	const maxListed = 15
	answer := fmt.Sprintf("The API has %d endpoint(s):\n", len(lines))
	if len(lines) > maxListed {
		answer += strings.Join(lines[:maxListed], "\n") + fmt.Sprintf("\n… and %d more.", len(lines)-maxListed)
	} else {
		answer += strings.Join(lines, "\n")
	}
	return Response{
		Intent:  IntentEndpoints,
		Answer:  answer,
		Summary: fmt.Sprintf("%d operations across %d paths.", len(lines), len(paths)),
	}
}

func parametersReply(spec *apispec.Spec, message string) Response {
	path, method, op, ok := matchOperation(spec, message)
	if !ok {
		return Response{
			Intent: IntentParameters,
			Answer: "Mention an endpoint path and I can list its parameters, e.g. \"what parameters does /users take?\".",
		}
	}

	if len(op.Parameters) == 0 && len(op.RequestBody) == 0 {
		return Response{
			Intent: IntentParameters,
			Answer: fmt.Sprintf("%s %s takes no documented parameters.", strings.ToUpper(method), path),
		}
	}

	var lines []string
	for _, p := range op.Parameters {
		req := "optional"
		if p.Required {
			req = "required"
		}
		lines = append(lines, fmt.Sprintf("%s (in %s, %s, %s)", p.Name, p.In, orDash(p.Type), req))
	}
	for _, f := range op.RequestBody {
		req := "optional"
		if f.Required {
			req = "required"
		}
		lines = append(lines, fmt.Sprintf("%s (in body, %s, %s)", f.Name, orDash(f.Type), req))
	}
	return Response{
		Intent:  IntentParameters,
		Answer:  fmt.Sprintf("%s %s parameters:\n%s", strings.ToUpper(method), path, strings.Join(lines, "\n")),
		Summary: fmt.Sprintf("Parameters of %s %s.", strings.ToUpper(method), path),
	}
}

func overviewReply(spec *apispec.Spec) Response {
	title := spec.Info.Title
	if title == "" {
		title = "This API"
	}
	return Response{
		Intent:  IntentOverview,
		Answer:  fmt.Sprintf("%s: %s", title, nlp.Summarize(nlp.CollectDescriptions(spec))),
		Summary: fmt.Sprintf("Overview of %s.", title),
	}
}

func searchReply(spec *apispec.Spec, message string) Response {
	keywords := nlp.Keywords(message, 3)
	for _, kw := range keywords {
		result := search.Keyword(spec, kw)
		if result.TotalMatches == 0 {
			continue
		}
		var lines []string
		for _, path := range sortedKeys(result.Endpoints) {
			for method, m := range result.Endpoints[path] {
				lines = append(lines, fmt.Sprintf("%s %s — %s", method, path, m.Description))
			}
		}
		return Response{
			Intent:  IntentSearch,
			Answer:  fmt.Sprintf("Closest matches for %q:\n%s", kw, strings.Join(lines, "\n")),
			Summary: fmt.Sprintf("%d match(es) for %q.", result.TotalMatches, kw),
		}
	}
	return Response{
		Intent: IntentSearch,
		Answer: "I couldn't find anything in the spec matching that. Try asking about endpoints, parameters, or authentication.",
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

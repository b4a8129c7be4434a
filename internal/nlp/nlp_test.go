package nlp

import (
	"strings"
	"testing"

	"github.com/specdoc/specdoc/internal/apispec"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "No description available."},
		{"whitespace", "   \n ", "No description available."},
		{
			"first sentence",
			"This API manages the pet inventory. It also tracks owner records.",
			"This API manages the pet inventory.",
		},
		{
			"short sentence falls back to clip",
			"Pets API. It stores pets and lets clients query them by tag or status.",
			"Pets API. It stores pets and lets clients query them by tag or status.",
		},
		{"no terminator", "just a fragment without punctuation", "just a fragment without punctuation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.in); got != tt.want {
				t.Errorf("Summarize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummarizeClipsLongText(t *testing.T) {
	long := "Pets API. " + strings.Repeat("word ", 100)
	got := Summarize(long)
	if len([]rune(got)) > 250 {
		t.Errorf("summary is %d runes, want at most 250", len([]rune(got)))
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("summary has trailing space: %q", got)
	}
}

func TestKeywords(t *testing.T) {
	text := "users users users orders orders the and of payments"
	got := Keywords(text, 2)
	if len(got) != 2 || got[0] != "users" || got[1] != "orders" {
		t.Errorf("Keywords = %v, want [users orders]", got)
	}
}

func TestKeywordsFiltersStopwordsAndShortWords(t *testing.T) {
	got := Keywords("the api is an id of it", 10)
	for _, w := range got {
		if w == "the" || w == "is" || w == "an" || w == "of" || w == "it" {
			t.Errorf("stopword %q survived: %v", w, got)
		}
		if len(w) < 3 {
			t.Errorf("short word %q survived: %v", w, got)
		}
	}
}

func TestKeywordsTieBreakAlphabetical(t *testing.T) {
	got := Keywords("zebra apple", 2)
	if len(got) != 2 || got[0] != "apple" || got[1] != "zebra" {
		t.Errorf("Keywords = %v, want [apple zebra]", got)
	}
}

func TestSmartDescription(t *testing.T) {
	t.Run("description wins", func(t *testing.T) {
		op := apispec.Operation{Description: "desc", Summary: "sum"}
		if got := SmartDescription("/a", "get", op); got != "desc" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("summary fallback", func(t *testing.T) {
		op := apispec.Operation{Summary: "sum"}
		if got := SmartDescription("/a", "get", op); got != "sum" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("assembled from metadata", func(t *testing.T) {
		op := apispec.Operation{
			OperationID: "listPets",
			Parameters:  []apispec.Parameter{{Name: "limit"}},
		}
		got := SmartDescription("/pets", "get", op)
		want := "GET /pets → Operation ID: listPets; parameters: limit"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("nothing available", func(t *testing.T) {
		got := SmartDescription("/x", "post", apispec.Operation{})
		want := "POST /x → No description available"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestCollectDescriptions(t *testing.T) {
	spec := &apispec.Spec{
		Info: apispec.Info{Description: "Top level."},
		Paths: map[string]apispec.PathItem{
			"/a": {"get": {Description: "Gets A."}},
			"/b": {"get": {Summary: "B summary"}},
		},
	}
	got := CollectDescriptions(spec)
	want := "Top level. Gets A. B summary"
	if got != want {
		t.Errorf("CollectDescriptions = %q, want %q", got, want)
	}
}

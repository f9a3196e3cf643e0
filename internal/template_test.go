package internal

import (
	"reflect"
	"testing"
)

func TestTokenizeAssignsPlaceholdersInCanonicalOrder(t *testing.T) {
	props := PropsBag{"name": "Bob", "message": "Hi"}

	tok, err := Tokenize("Hello", props, TemplateOptions{})
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}

	// Canonical order is sorted: message before name.
	if len(tok.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tok.Tokens))
	}
	if tok.Tokens[0].Path != "message" || tok.Tokens[0].Value != "Hi" {
		t.Errorf("token 0 = %+v, want path=message value=Hi", tok.Tokens[0])
	}
	if tok.Tokens[1].Path != "name" || tok.Tokens[1].Value != "Bob" {
		t.Errorf("token 1 = %+v, want path=name value=Bob", tok.Tokens[1])
	}

	expected := PropsBag{"name": "@1@", "message": "@0@"}
	if !reflect.DeepEqual(tok.Props, expected) {
		t.Errorf("tokenized props = %v, want %v", tok.Props, expected)
	}
}

func TestTokenizeClassification(t *testing.T) {
	opts := NewTemplateOptions(
		[]string{"variant"},    // preserve
		[]string{"emptyKept"},  // preserve empty
		[]string{"sessionId"},  // ignore
		[]string{"count"},      // whitelist non-string
	)

	props := PropsBag{
		"title":     "Welcome",
		"variant":   "compact",
		"emptyKept": "",
		"emptyDrop": "",
		"sessionId": "abc-123",
		"count":     7,
		"enabled":   true,
	}

	tok, err := Tokenize("Widget", props, opts)
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}

	// Tokenized: count (whitelisted) and title; sorted order puts count first.
	if len(tok.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %+v", len(tok.Tokens), tok.Tokens)
	}
	if tok.Tokens[0].Path != "count" || tok.Tokens[1].Path != "title" {
		t.Errorf("token paths = %s,%s, want count,title", tok.Tokens[0].Path, tok.Tokens[1].Path)
	}

	// Literal values stay in place for everything else; ignored values pass
	// through untouched.
	if tok.Props["variant"] != "compact" {
		t.Errorf("preserved value was tokenized: %v", tok.Props["variant"])
	}
	if tok.Props["emptyKept"] != "" || tok.Props["emptyDrop"] != "" {
		t.Errorf("empty strings must stay literal")
	}
	if tok.Props["sessionId"] != "abc-123" {
		t.Errorf("ignored value must pass through, got %v", tok.Props["sessionId"])
	}
	if tok.Props["count"] != "@0@" {
		t.Errorf("whitelisted value must be tokenized, got %v", tok.Props["count"])
	}
	if tok.Props["enabled"] != true {
		t.Errorf("non-whitelisted bool must stay literal, got %v", tok.Props["enabled"])
	}
}

func TestTokenizeKeyStability(t *testing.T) {
	opts := NewTemplateOptions([]string{"variant"}, nil, []string{"sessionId"}, nil)

	base := PropsBag{"name": "Bob", "variant": "wide", "sessionId": "s1"}

	baseTok, err := Tokenize("Hello", base, opts)
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}

	tests := []struct {
		name    string
		props   PropsBag
		sameKey bool
	}{
		{
			name:    "different tokenized value",
			props:   PropsBag{"name": "Ann", "variant": "wide", "sessionId": "s1"},
			sameKey: true,
		},
		{
			name:    "different ignored value",
			props:   PropsBag{"name": "Bob", "variant": "wide", "sessionId": "s2"},
			sameKey: true,
		},
		{
			name:    "different preserved value",
			props:   PropsBag{"name": "Bob", "variant": "narrow", "sessionId": "s1"},
			sameKey: false,
		},
		{
			name:    "different shape",
			props:   PropsBag{"name": "Bob", "extra": "x", "variant": "wide", "sessionId": "s1"},
			sameKey: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := Tokenize("Hello", tt.props, opts)
			if err != nil {
				t.Fatalf("Tokenize() returned error: %v", err)
			}
			if (tok.KeySource == baseTok.KeySource) != tt.sameKey {
				t.Errorf("KeySource equality = %v, want %v\nbase: %s\ngot:  %s",
					tok.KeySource == baseTok.KeySource, tt.sameKey, baseTok.KeySource, tok.KeySource)
			}
		})
	}
}

func TestTokenizeRejectsPlaceholderLikeValues(t *testing.T) {
	tests := []struct {
		name  string
		props PropsBag
		opts  TemplateOptions
	}{
		{
			name:  "tokenizable value",
			props: PropsBag{"name": "literal @3@ inside"},
		},
		{
			name:  "preserved value",
			props: PropsBag{"variant": "@0@"},
			opts:  NewTemplateOptions([]string{"variant"}, nil, nil, nil),
		},
		{
			// An ignored value still reaches the renderer's markup, so it
			// must be guarded too or Apply would rewrite it.
			name:  "ignored value",
			props: PropsBag{"sessionId": "@0@"},
			opts:  NewTemplateOptions(nil, nil, []string{"sessionId"}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize("Hello", tt.props, tt.opts)
			if err == nil {
				t.Fatal("Tokenize() expected error for placeholder-like value, got nil")
			}
			if !IsValidationError(err) {
				t.Errorf("expected VALIDATION error, got %v", err)
			}
		})
	}
}

func TestApplySubstitutesAllOccurrences(t *testing.T) {
	tok := &Tokenized{Tokens: []Token{
		{Index: 0, Path: "name", Value: "Bob"},
		{Index: 1, Path: "title", Value: "Dr"},
	}}

	out, err := tok.Apply("<p>@1@ @0@, yes @0@</p>", false)
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	if out != "<p>Dr Bob, yes Bob</p>" {
		t.Errorf("Apply() = %q", out)
	}
}

func TestApplySinglePass(t *testing.T) {
	// A substituted value containing placeholder-like text must not be
	// rescanned and replaced again.
	tok := &Tokenized{Tokens: []Token{
		{Index: 0, Path: "a", Value: "@1@"},
		{Index: 1, Path: "b", Value: "SECRET"},
	}}

	out, err := tok.Apply("<p>@0@</p>", false)
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	if out != "<p>@1@</p>" {
		t.Errorf("Apply() = %q, substituted value was rescanned", out)
	}
}

func TestApplyShapeMismatch(t *testing.T) {
	tok := &Tokenized{Tokens: []Token{{Index: 0, Path: "name", Value: "Bob"}}}

	_, err := tok.Apply("<p>@0@ @4@</p>", false)
	if err == nil {
		t.Fatal("Apply() expected error for unknown placeholder, got nil")
	}
	if !IsTemplateMismatchError(err) {
		t.Errorf("expected TEMPLATE_MISMATCH error, got %v", err)
	}
}

func TestDetokenizeRoundTrip(t *testing.T) {
	render := func(props PropsBag) string {
		return "<div>Hello, <span>" + props["name"].(string) + "</span>. <span>" + props["message"].(string) + "</span></div>"
	}

	first := PropsBag{"name": "Bob", "message": "Hi"}
	tok, err := Tokenize("Hello", first, TemplateOptions{})
	if err != nil {
		t.Fatalf("Tokenize() returned error: %v", err)
	}

	template := render(tok.Props)

	// Replay with a second bag of the same shape.
	second := PropsBag{"name": "Ann", "message": "Yo"}
	out, err := Detokenize(template, "Hello", second, TemplateOptions{}, false)
	if err != nil {
		t.Fatalf("Detokenize() returned error: %v", err)
	}

	if expected := render(second); out != expected {
		t.Errorf("Detokenize() = %q, want %q", out, expected)
	}
}

func TestApplyStripURLProtocol(t *testing.T) {
	tok := &Tokenized{Tokens: []Token{
		{Index: 0, Path: "href", Value: "https://example.com/a"},
		{Index: 1, Path: "label", Value: "click"},
	}}

	out, err := tok.Apply(`<a href="@0@">@1@</a>`, true)
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	if out != `<a href="//example.com/a">click</a>` {
		t.Errorf("Apply() = %q", out)
	}
}

func TestStripURLProtocol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "http", input: "http://example.com", expected: "//example.com"},
		{name: "https", input: "https://example.com", expected: "//example.com"},
		{name: "mixed case", input: "HTTPS://example.com", expected: "//example.com"},
		{name: "not a url", input: "hello", expected: "hello"},
		{name: "protocol mid-string", input: "see http://x", expected: "see http://x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripURLProtocol(tt.input); got != tt.expected {
				t.Errorf("StripURLProtocol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultHashKey(t *testing.T) {
	a := DefaultHashKey("Hello|template|name=@")
	b := DefaultHashKey("Hello|template|name=@")
	c := DefaultHashKey("Other|template|name=@")

	if a != b {
		t.Error("DefaultHashKey() must be deterministic")
	}
	if a == c {
		t.Error("DefaultHashKey() collision on different inputs")
	}
	if a == "" {
		t.Error("DefaultHashKey() returned empty string")
	}
}

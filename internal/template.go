package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// TemplateOptions controls which property paths may be abstracted into
// placeholders by the template strategy. All sets match full canonical
// property paths ("user.name", "items[0].label").
type TemplateOptions struct {
	// PreserveKeys lists paths whose literal value must stay in place and
	// contribute to the cache key, because the value changes markup
	// structure (conditional rendering branches).
	PreserveKeys map[string]bool

	// PreserveEmptyKeys lists paths whose empty-string value must be kept
	// literal and keyed, instead of being treated as untokenizable.
	PreserveEmptyKeys map[string]bool

	// IgnoreKeys lists paths excluded from the cache key entirely. The
	// original value still reaches the renderer, but two bags differing
	// only in an ignored path probe the same cache entry.
	IgnoreKeys map[string]bool

	// WhiteListNonStringKeys lists paths whose non-string value may be
	// tokenized anyway. Only leaf paths qualify: traversal descends into
	// maps and slices before classification, so whitelisting a container
	// path has no effect (whitelist its leaf paths instead).
	WhiteListNonStringKeys map[string]bool
}

// NewTemplateOptions builds TemplateOptions from path lists.
func NewTemplateOptions(preserve, preserveEmpty, ignore, whitelist []string) TemplateOptions {
	return TemplateOptions{
		PreserveKeys:           pathSet(preserve),
		PreserveEmptyKeys:      pathSet(preserveEmpty),
		IgnoreKeys:             pathSet(ignore),
		WhiteListNonStringKeys: pathSet(whitelist),
	}
}

func pathSet(paths []string) map[string]bool {
	if len(paths) == 0 {
		return nil
	}
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}

// Token records one placeholder assignment: the placeholder index, the
// canonical path it replaced, and the value at that path in the current bag.
type Token struct {
	Index int
	Path  string
	Value any
}

// Placeholder returns the token's literal placeholder text.
func (t Token) Placeholder() string {
	return "@" + strconv.Itoa(t.Index) + "@"
}

// Tokenized is the result of tokenizing one props bag: the bag with
// tokenizable values replaced by placeholders, the ordered token map, and
// the composed (pre-hash) cache key material.
type Tokenized struct {
	Props     PropsBag
	Tokens    []Token
	KeySource string
}

// placeholderPattern matches placeholder text in templates and, during
// tokenization, user values that would collide with the token alphabet.
var placeholderPattern = regexp.MustCompile(`@(\d+)@`)

// Tokenize traverses a props bag in canonical order and replaces every
// tokenizable leaf with a positional placeholder "@N@". Indices are assigned
// sequentially in traversal order, so bags with the same tokenizable-path
// shape always receive the same assignment.
//
// Per-leaf classification, first match wins:
//  1. path in IgnoreKeys: value passes through untouched, no key contribution
//  2. path in PreserveKeys, or empty string with path in PreserveEmptyKeys:
//     literal kept, literal value contributes to the key
//  3. non-empty string, or any value whose path is whitelisted: replaced by a
//     placeholder; only the path (shape) contributes to the key
//  4. anything else: literal kept and keyed
//
// A string value that itself contains placeholder-like text ("@3@") cannot be
// cached safely with string substitution; Tokenize rejects the whole bag with
// a VALIDATION error and the caller renders uncached. The guard applies to
// every string leaf, ignored paths included, because ignored values still
// reach the renderer's markup.
func Tokenize(identity string, props PropsBag, opts TemplateOptions) (*Tokenized, error) {
	tok := &Tokenized{}
	var keyParts []string

	out, err := WalkLeaves(props, func(path string, v any) (any, error) {
		// The collision guard must cover every string that can reach the
		// rendered markup, ignored paths included: an ignored value still
		// flows to the renderer and would be rewritten by Apply.
		str, isString := v.(string)
		if isString && placeholderPattern.MatchString(str) {
			return nil, NewValidationError(
				fmt.Sprintf("prop '%s' contains placeholder-like text and cannot be templated", path), nil)
		}

		if opts.IgnoreKeys[path] {
			return v, nil
		}

		preserve := opts.PreserveKeys[path] ||
			(isString && str == "" && opts.PreserveEmptyKeys[path])
		tokenizable := !preserve &&
			((isString && str != "") || opts.WhiteListNonStringKeys[path])

		if tokenizable {
			t := Token{Index: len(tok.Tokens), Path: path, Value: v}
			tok.Tokens = append(tok.Tokens, t)
			keyParts = append(keyParts, path+"=@")
			return t.Placeholder(), nil
		}

		// Preserved or untokenizable: the literal value is keyed so that
		// different literals map to different cache entries.
		canon, err := CanonicalValue(path, v)
		if err != nil {
			return nil, err
		}
		keyParts = append(keyParts, path+"="+canon)
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	tok.Props = out
	tok.KeySource = identity + "|template|" + strings.Join(keyParts, ",")
	return tok, nil
}

// Apply substitutes this token map's current values into a stored template.
// Substitution is a single pass, so substituted values are never rescanned
// for placeholders. A placeholder index with no corresponding token means
// the template was produced from a different tokenizable-path shape; Apply
// reports a TEMPLATE_MISMATCH error and the caller must fall back to a full
// uncached render.
func (tok *Tokenized) Apply(template string, stripProtocol bool) (string, error) {
	var mismatch error
	out := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		idx, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || idx >= len(tok.Tokens) {
			if mismatch == nil {
				mismatch = NewTemplateMismatchError(m,
					fmt.Sprintf("template placeholder %s has no token in current props", m))
			}
			return m
		}
		val := Stringify(tok.Tokens[idx].Value)
		if stripProtocol {
			val = StripURLProtocol(val)
		}
		return val
	})
	if mismatch != nil {
		return "", mismatch
	}
	return out, nil
}

// Detokenize rebuilds the placeholder mapping from the current props using
// the identical canonical traversal as Tokenize, then substitutes every
// placeholder occurrence in the stored template.
func Detokenize(template, identity string, props PropsBag, opts TemplateOptions, stripProtocol bool) (string, error) {
	tok, err := Tokenize(identity, props, opts)
	if err != nil {
		return "", err
	}
	return tok.Apply(template, stripProtocol)
}

// StripURLProtocol makes a URL value protocol-relative. Non-URL values pass
// through unchanged.
func StripURLProtocol(s string) string {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") {
		return s[len("http:"):]
	}
	if strings.HasPrefix(lower, "https://") {
		return s[len("https:"):]
	}
	return s
}

// DefaultHashKey is the default key hash used when key hashing is enabled:
// 64-bit xxhash of the composed key material, hex encoded.
func DefaultHashKey(composed string) string {
	return strconv.FormatUint(xxhash.Sum64String(composed), 16)
}

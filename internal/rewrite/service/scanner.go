// Package service implements the low-level text scanning for the placeholder
// grammar: author-time placeholder forms ({kind#label}, {kind#label:value},
// {kind:value}, with [] accepted as an alternate delimiter for command and
// variable references) and the canonical tokens produced by the
// canonicalizer (`id@x`, `var@x`, `command@x|path`, {🔒:x}).
//
// A hand-written scanner over the fixed delimiter set keeps the priority
// ordering and non-overlap guarantees explicit instead of leaning on regex
// semantics.
package service

import (
	"sort"
	"strings"

	rewriteDomain "github.com/allisson/refvault/internal/rewrite/domain"
)

// secureOpen starts a canonical secure token. The lock sigil is a fixed
// sentinel chosen to be extremely unlikely to collide with user content.
const secureOpen = "{🔒:"

// grammarChars never appear inside a label.
const grammarChars = "{}[]#|`"

type delimiter struct {
	open  byte
	close byte
}

var (
	braces   = []delimiter{{'{', '}'}}
	brackets = []delimiter{{'{', '}'}, {'[', ']'}}
)

// PlaceholderMatch is one author-time placeholder occurrence.
type PlaceholderMatch struct {
	Span  rewriteDomain.Span
	Label string
	Value string
}

// Token returns the exact source text of the match.
func (m PlaceholderMatch) Token(text string) string {
	return text[m.Span.Start:m.Span.End]
}

// FindLabeled finds {kind#label} placeholders, and [kind#label] when
// alternate delimiters are allowed.
func FindLabeled(text, kind string, alternate bool) []PlaceholderMatch {
	return findPlaceholders(text, kind, true, false, delims(alternate))
}

// FindLabeledWithValue finds {kind#label:value} placeholders.
func FindLabeledWithValue(text, kind string, alternate bool) []PlaceholderMatch {
	return findPlaceholders(text, kind, true, true, delims(alternate))
}

// FindRaw finds {kind:value} placeholders.
func FindRaw(text, kind string, alternate bool) []PlaceholderMatch {
	return findPlaceholders(text, kind, false, true, delims(alternate))
}

func delims(alternate bool) []delimiter {
	if alternate {
		return brackets
	}
	return braces
}

func findPlaceholders(text, kind string, withLabel, withValue bool, delims []delimiter) []PlaceholderMatch {
	var matches []PlaceholderMatch

	for i := 0; i < len(text); i++ {
		var d delimiter
		found := false
		for _, candidate := range delims {
			if text[i] == candidate.open {
				d = candidate
				found = true
				break
			}
		}
		if !found {
			continue
		}

		rel := strings.IndexByte(text[i+1:], d.close)
		if rel < 0 {
			continue
		}
		j := i + 1 + rel

		match, ok := parsePlaceholder(text[i+1:j], kind, withLabel, withValue)
		if !ok {
			continue
		}

		match.Span = rewriteDomain.Span{Start: i, End: j + 1}
		matches = append(matches, match)
		i = j
	}

	return matches
}

func parsePlaceholder(content, kind string, withLabel, withValue bool) (PlaceholderMatch, bool) {
	var match PlaceholderMatch

	if !strings.HasPrefix(content, kind) {
		return match, false
	}
	rest := content[len(kind):]

	if withLabel {
		if !strings.HasPrefix(rest, "#") {
			return match, false
		}
		rest = rest[1:]

		if withValue {
			idx := strings.IndexByte(rest, ':')
			if idx < 0 {
				return match, false
			}
			match.Label, match.Value = rest[:idx], rest[idx+1:]
			if match.Label == "" || match.Value == "" {
				return match, false
			}
		} else {
			if rest == "" || strings.ContainsRune(rest, ':') {
				return match, false
			}
			match.Label = rest
		}

		if strings.ContainsAny(match.Label, grammarChars) {
			return match, false
		}
		return match, true
	}

	if !strings.HasPrefix(rest, ":") {
		return match, false
	}
	value := rest[1:]
	if value == "" {
		return match, false
	}
	match.Value = value
	return match, true
}

// FindCommandRefs finds canonical `command@id` and `command@id|path` tokens.
func FindCommandRefs(text string) []rewriteDomain.Reference {
	return findBacktickRefs(text, rewriteDomain.CommandChainRef)
}

// FindVarRefs finds variable tokens in both canonical forms: `var@id` as
// produced by the canonicalizer and the legacy run-time form {var:id}.
func FindVarRefs(text string) []rewriteDomain.Reference {
	refs := findBacktickRefs(text, rewriteDomain.VarRef)

	for _, match := range FindRaw(text, "var", false) {
		if strings.ContainsAny(match.Value, grammarChars) || strings.ContainsRune(match.Value, ':') {
			continue
		}
		refs = append(refs, rewriteDomain.Reference{
			Kind:   rewriteDomain.VarRef,
			Target: match.Value,
			Span:   match.Span,
		})
	}

	// keep textual order so the caller's right-to-left rewrite stays offset-safe
	sortRefs(refs)
	return refs
}

// FindSecureRefs finds canonical {🔒:refId} tokens.
func FindSecureRefs(text string) []rewriteDomain.Reference {
	var refs []rewriteDomain.Reference

	i := 0
	for {
		rel := strings.Index(text[i:], secureOpen)
		if rel < 0 {
			break
		}
		start := i + rel

		closeRel := strings.IndexByte(text[start+len(secureOpen):], '}')
		if closeRel < 0 {
			break
		}
		end := start + len(secureOpen) + closeRel + 1

		refID := text[start+len(secureOpen) : end-1]
		if refID != "" && !strings.ContainsAny(refID, grammarChars) {
			refs = append(refs, rewriteDomain.Reference{
				Kind:   rewriteDomain.SecureRef,
				Target: refID,
				Span:   rewriteDomain.Span{Start: start, End: end},
			})
		}
		i = end
	}

	return refs
}

func findBacktickRefs(text string, kind rewriteDomain.Kind) []rewriteDomain.Reference {
	prefix := string(kind) + "@"
	var refs []rewriteDomain.Reference

	for i := 0; i < len(text); i++ {
		if text[i] != '`' {
			continue
		}
		rel := strings.IndexByte(text[i+1:], '`')
		if rel < 0 {
			break
		}
		j := i + 1 + rel

		content := text[i+1 : j]
		if !strings.HasPrefix(content, prefix) {
			// the closing backtick may open the next reference
			i = j - 1
			continue
		}

		target := content[len(prefix):]
		var path string
		if kind == rewriteDomain.CommandChainRef {
			if idx := strings.IndexByte(target, '|'); idx >= 0 {
				target, path = target[:idx], target[idx+1:]
			}
		}
		if target == "" {
			i = j - 1
			continue
		}

		refs = append(refs, rewriteDomain.Reference{
			Kind:   kind,
			Target: target,
			Path:   path,
			Span:   rewriteDomain.Span{Start: i, End: j + 1},
		})
		i = j
	}

	return refs
}

func sortRefs(refs []rewriteDomain.Reference) {
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Span.Start < refs[j].Span.Start
	})
}

// CanonicalID renders the canonical command-by-id token.
func CanonicalID(id string) string {
	return "`id@" + id + "`"
}

// CanonicalVar renders the canonical variable token.
func CanonicalVar(refID string) string {
	return "`var@" + refID + "`"
}

// CanonicalChain renders the canonical command chain token.
func CanonicalChain(commandID string) string {
	return "`command@" + commandID + "`"
}

// SecureToken renders the canonical secure token.
func SecureToken(refID string) string {
	return secureOpen + refID + "}"
}

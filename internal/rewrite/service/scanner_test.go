package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLabeled(t *testing.T) {
	t.Run("braces and brackets", func(t *testing.T) {
		text := "run {id#deploy} then [id#cleanup]"

		matches := FindLabeled(text, "id", true)
		require.Len(t, matches, 2)
		assert.Equal(t, "deploy", matches[0].Label)
		assert.Equal(t, "{id#deploy}", matches[0].Token(text))
		assert.Equal(t, "cleanup", matches[1].Label)
		assert.Equal(t, "[id#cleanup]", matches[1].Token(text))
	})

	t.Run("brackets ignored when not allowed", func(t *testing.T) {
		matches := FindLabeled("[secure#token]", "secure", false)
		assert.Empty(t, matches)
	})

	t.Run("does not match the with-value form", func(t *testing.T) {
		matches := FindLabeled("{var#env:production}", "var", true)
		assert.Empty(t, matches)
	})

	t.Run("does not match other kinds", func(t *testing.T) {
		matches := FindLabeled("{var#env}", "id", true)
		assert.Empty(t, matches)
	})

	t.Run("empty label rejected", func(t *testing.T) {
		matches := FindLabeled("{id#}", "id", true)
		assert.Empty(t, matches)
	})
}

func TestFindLabeledWithValue(t *testing.T) {
	t.Run("label and value", func(t *testing.T) {
		text := "{var#env:production}"

		matches := FindLabeledWithValue(text, "var", true)
		require.Len(t, matches, 1)
		assert.Equal(t, "env", matches[0].Label)
		assert.Equal(t, "production", matches[0].Value)
	})

	t.Run("value may contain colons", func(t *testing.T) {
		matches := FindLabeledWithValue("{secure#db:postgres://u:p@host}", "secure", false)
		require.Len(t, matches, 1)
		assert.Equal(t, "db", matches[0].Label)
		assert.Equal(t, "postgres://u:p@host", matches[0].Value)
	})

	t.Run("missing value rejected", func(t *testing.T) {
		matches := FindLabeledWithValue("{var#env}", "var", true)
		assert.Empty(t, matches)
	})
}

func TestFindRaw(t *testing.T) {
	t.Run("raw id pass-through", func(t *testing.T) {
		text := "before {id:abc123} after"

		matches := FindRaw(text, "id", true)
		require.Len(t, matches, 1)
		assert.Equal(t, "abc123", matches[0].Value)
		assert.Equal(t, "{id:abc123}", matches[0].Token(text))
	})

	t.Run("secure plaintext may contain anything but the closer", func(t *testing.T) {
		matches := FindRaw("{secure:p4ss:w#rd}", "secure", false)
		require.Len(t, matches, 1)
		assert.Equal(t, "p4ss:w#rd", matches[0].Value)
	})

	t.Run("labeled form not matched", func(t *testing.T) {
		matches := FindRaw("{secure#token:abc}", "secure", false)
		assert.Empty(t, matches)
	})

	t.Run("unterminated placeholder ignored", func(t *testing.T) {
		matches := FindRaw("{secure:dangling", "secure", false)
		assert.Empty(t, matches)
	})

	t.Run("multiple occurrences in textual order", func(t *testing.T) {
		text := `{secure:A} and {secure:B}`

		matches := FindRaw(text, "secure", false)
		require.Len(t, matches, 2)
		assert.Equal(t, "A", matches[0].Value)
		assert.Equal(t, "B", matches[1].Value)
		assert.Less(t, matches[0].Span.Start, matches[1].Span.Start)
	})
}

func TestFindCommandRefs(t *testing.T) {
	t.Run("plain and with path", func(t *testing.T) {
		text := "x=`command@abc123` y=`command@def456|items[0].token`"

		refs := FindCommandRefs(text)
		require.Len(t, refs, 2)
		assert.Equal(t, "abc123", refs[0].Target)
		assert.Empty(t, refs[0].Path)
		assert.Equal(t, "def456", refs[1].Target)
		assert.Equal(t, "items[0].token", refs[1].Path)
		assert.Equal(t, "`command@abc123`", refs[0].Token(text))
	})

	t.Run("other backtick content skipped", func(t *testing.T) {
		refs := FindCommandRefs("literal `code` then `command@abc123`")
		require.Len(t, refs, 1)
		assert.Equal(t, "abc123", refs[0].Target)
	})

	t.Run("unterminated token ignored", func(t *testing.T) {
		assert.Empty(t, FindCommandRefs("`command@abc123"))
	})
}

func TestFindVarRefs(t *testing.T) {
	text := "a={var:legacy} b=`var@modern`"

	refs := FindVarRefs(text)
	require.Len(t, refs, 2)
	assert.Equal(t, "legacy", refs[0].Target)
	assert.Equal(t, "modern", refs[1].Target)
	assert.Less(t, refs[0].Span.Start, refs[1].Span.Start)
}

func TestFindSecureRefs(t *testing.T) {
	t.Run("finds tokens", func(t *testing.T) {
		text := "token={🔒:a1B2c3} other={🔒:x9Y8z7}"

		refs := FindSecureRefs(text)
		require.Len(t, refs, 2)
		assert.Equal(t, "a1B2c3", refs[0].Target)
		assert.Equal(t, "x9Y8z7", refs[1].Target)
		assert.Equal(t, "{🔒:a1B2c3}", refs[0].Token(text))
	})

	t.Run("empty refId ignored", func(t *testing.T) {
		assert.Empty(t, FindSecureRefs("{🔒:}"))
	})
}

func TestCanonicalForms(t *testing.T) {
	assert.Equal(t, "`id@abc123`", CanonicalID("abc123"))
	assert.Equal(t, "`var@abc123`", CanonicalVar("abc123"))
	assert.Equal(t, "`command@abc123`", CanonicalChain("abc123"))
	assert.Equal(t, "{🔒:abc123}", SecureToken("abc123"))
}

func TestCanonicalFormsNotMatchedByPlaceholderScans(t *testing.T) {
	text := "a=`id@x` b=`var@y` c={🔒:z}"

	for _, kind := range []string{"id", "var", "secure"} {
		assert.Empty(t, FindLabeled(text, kind, true))
		assert.Empty(t, FindLabeledWithValue(text, kind, true))
		assert.Empty(t, FindRaw(text, kind, true))
	}
}

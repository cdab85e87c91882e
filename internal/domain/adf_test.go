package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_Paragraphs(t *testing.T) {
	doc := NewDocument("first line\nsecond line\n\nnext paragraph")

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	want := `{"type":"doc","content":[` +
		`{"type":"paragraph","content":[{"type":"text","text":"first line"},{"type":"hardBreak"},{"type":"text","text":"second line"}]},` +
		`{"type":"paragraph","content":[{"type":"text","text":"next paragraph"}]}` +
		`],"version":1}`
	assert.JSONEq(t, want, string(data))
}

func TestNewDocument_SkipsBlankBlocks(t *testing.T) {
	doc := NewDocument("\r\n\r\nonly\r\n\r\n\r\n")
	require.Len(t, doc.Content, 1)
	assert.Equal(t, "only", doc.PlainText())
}

func TestDocument_RoundTripPlainText(t *testing.T) {
	text := "hello\nworld\n\nbye"
	assert.Equal(t, text, NewDocument(text).PlainText())
}

func TestParseDocument(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		doc, err := ParseDocument(json.RawMessage("null"))
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("v2 plain string", func(t *testing.T) {
		doc, err := ParseDocument(json.RawMessage(`"plain body"`))
		require.NoError(t, err)
		assert.Equal(t, "plain body", doc.PlainText())
	})

	t.Run("adf", func(t *testing.T) {
		raw := `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"adf body"}]}]}`
		doc, err := ParseDocument(json.RawMessage(raw))
		require.NoError(t, err)
		assert.Equal(t, "adf body", doc.PlainText())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDocument(json.RawMessage(`{"type":`))
		assert.Error(t, err)
	})
}

const richDocument = `{
  "type": "doc", "version": 1,
  "content": [
    {"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Steps"}]},
    {"type": "paragraph", "content": [
      {"type": "text", "text": "Ping "},
      {"type": "mention", "attrs": {"id": "abc", "text": "@Ada"}},
      {"type": "text", "text": " about "},
      {"type": "text", "text": "this", "marks": [{"type": "strong"}]},
      {"type": "text", "text": " and "},
      {"type": "text", "text": "docs", "marks": [{"type": "link", "attrs": {"href": "https://example.com"}}]}
    ]},
    {"type": "bulletList", "content": [
      {"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]},
      {"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "two"}]}]}
    ]},
    {"type": "codeBlock", "attrs": {"language": "go"}, "content": [{"type": "text", "text": "fmt.Println()"}]},
    {"type": "rule"}
  ]
}`

func TestDocument_PlainText_Rich(t *testing.T) {
	doc, err := ParseDocument(json.RawMessage(richDocument))
	require.NoError(t, err)

	want := "Steps\n\n" +
		"Ping @Ada about this and docs (https://example.com)\n\n" +
		"- one\n- two\n\n" +
		"fmt.Println()\n\n" +
		"---"
	assert.Equal(t, want, doc.PlainText())
}

func TestDocument_Markdown_Rich(t *testing.T) {
	doc, err := ParseDocument(json.RawMessage(richDocument))
	require.NoError(t, err)

	md := doc.Markdown()
	assert.Contains(t, md, "## Steps")
	assert.Contains(t, md, "**this**")
	assert.Contains(t, md, "[docs](https://example.com)")
	assert.Contains(t, md, "- one\n- two")
	assert.Contains(t, md, "```go\nfmt.Println()\n```")
}

func TestDocument_IsEmpty(t *testing.T) {
	var nothing *Document
	assert.True(t, nothing.IsEmpty())
	assert.True(t, NewDocument("  ").IsEmpty())
	assert.False(t, NewDocument("x").IsEmpty())
}

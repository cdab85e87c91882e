package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is an Atlassian Document Format tree.
// The root node has Type "doc" and Version 1.
type Document struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Document    `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Version int            `json:"version,omitempty"`
}

// Mark is inline formatting applied to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// NewDocument converts plain text into an ADF document. Blank lines separate
// paragraphs and single newlines become hard breaks.
func NewDocument(text string) *Document {
	doc := &Document{Type: "doc", Version: 1, Content: []*Document{}}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.Trim(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		para := &Document{Type: "paragraph"}
		for i, line := range strings.Split(block, "\n") {
			if i > 0 {
				para.Content = append(para.Content, &Document{Type: "hardBreak"})
			}
			if line != "" {
				para.Content = append(para.Content, &Document{Type: "text", Text: line})
			}
		}
		doc.Content = append(doc.Content, para)
	}
	return doc
}

// ParseDocument decodes a field value that may be ADF (API v3), a plain string
// (API v2) or null.
func ParseDocument(raw json.RawMessage) (*Document, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode text body: %w", err)
		}
		return NewDocument(s), nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// IsEmpty reports whether the document holds no text.
func (d *Document) IsEmpty() bool {
	return d == nil || strings.TrimSpace(d.PlainText()) == ""
}

// PlainText renders the document without formatting.
func (d *Document) PlainText() string {
	if d == nil {
		return ""
	}
	var r docRenderer
	r.block(d, 0)
	return strings.TrimRight(r.b.String(), "\n")
}

// Markdown renders the document as Markdown.
func (d *Document) Markdown() string {
	if d == nil {
		return ""
	}
	r := docRenderer{markdown: true}
	r.block(d, 0)
	return strings.TrimRight(r.b.String(), "\n")
}

type docRenderer struct {
	b        strings.Builder
	markdown bool
}

func (r *docRenderer) block(n *Document, depth int) {
	switch n.Type {
	case "doc":
		for _, c := range n.Content {
			r.block(c, depth)
		}
	case "paragraph":
		r.b.WriteString(r.inline(n.Content))
		r.b.WriteString("\n\n")
	case "heading":
		if r.markdown {
			r.b.WriteString(strings.Repeat("#", headingLevel(n)) + " ")
		}
		r.b.WriteString(r.inline(n.Content))
		r.b.WriteString("\n\n")
	case "bulletList", "orderedList":
		r.list(n, depth)
		if depth == 0 {
			r.b.WriteString("\n")
		}
	case "codeBlock":
		lang, _ := n.Attrs["language"].(string)
		text := r.inline(n.Content)
		if r.markdown {
			r.b.WriteString("```" + lang + "\n" + text + "\n```\n\n")
		} else {
			r.b.WriteString(text + "\n\n")
		}
	case "blockquote":
		var inner docRenderer
		inner.markdown = r.markdown
		for _, c := range n.Content {
			inner.block(c, depth)
		}
		for _, line := range strings.Split(strings.TrimRight(inner.b.String(), "\n"), "\n") {
			r.b.WriteString("> " + line + "\n")
		}
		r.b.WriteString("\n")
	case "rule":
		r.b.WriteString("---\n\n")
	case "panel":
		for _, c := range n.Content {
			r.block(c, depth)
		}
	case "mediaSingle", "mediaGroup":
		r.b.WriteString("[attachment]\n\n")
	case "table":
		r.table(n)
	default:
		if text := r.inline([]*Document{n}); text != "" {
			r.b.WriteString(text + "\n\n")
		}
	}
}

func (r *docRenderer) list(n *Document, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, item := range n.Content {
		bullet := "- "
		if n.Type == "orderedList" {
			bullet = fmt.Sprintf("%d. ", i+1)
		}
		first := true
		for _, c := range item.Content {
			switch c.Type {
			case "bulletList", "orderedList":
				r.list(c, depth+1)
			default:
				var inner docRenderer
				inner.markdown = r.markdown
				inner.block(c, depth+1)
				text := strings.TrimRight(inner.b.String(), "\n")
				if first {
					r.b.WriteString(indent + bullet + text + "\n")
					first = false
				} else {
					r.b.WriteString(indent + "  " + text + "\n")
				}
			}
		}
	}
}

func (r *docRenderer) table(n *Document) {
	for ri, row := range n.Content {
		cells := make([]string, 0, len(row.Content))
		for _, cell := range row.Content {
			var inner docRenderer
			inner.markdown = r.markdown
			for _, c := range cell.Content {
				inner.block(c, 0)
			}
			cells = append(cells, strings.ReplaceAll(strings.TrimSpace(inner.b.String()), "\n", " "))
		}
		r.b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		if ri == 0 && r.markdown {
			r.b.WriteString("|" + strings.Repeat(" --- |", len(cells)) + "\n")
		}
	}
	r.b.WriteString("\n")
}

func (r *docRenderer) inline(nodes []*Document) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case "text":
			b.WriteString(r.marked(n))
		case "hardBreak":
			b.WriteString("\n")
		case "mention":
			text, _ := n.Attrs["text"].(string)
			if !strings.HasPrefix(text, "@") {
				text = "@" + text
			}
			b.WriteString(text)
		case "emoji":
			if text, ok := n.Attrs["text"].(string); ok && text != "" {
				b.WriteString(text)
			} else if short, ok := n.Attrs["shortName"].(string); ok {
				b.WriteString(short)
			}
		case "inlineCard", "blockCard":
			url, _ := n.Attrs["url"].(string)
			b.WriteString(url)
		case "status":
			text, _ := n.Attrs["text"].(string)
			b.WriteString("[" + text + "]")
		case "date":
			ts, _ := n.Attrs["timestamp"].(string)
			b.WriteString(ts)
		default:
			b.WriteString(r.inline(n.Content))
		}
	}
	return b.String()
}

func (r *docRenderer) marked(n *Document) string {
	text := n.Text
	if !r.markdown {
		for _, m := range n.Marks {
			if m.Type == "link" {
				if href, _ := m.Attrs["href"].(string); href != "" && href != text {
					text += " (" + href + ")"
				}
			}
		}
		return text
	}
	for _, m := range n.Marks {
		switch m.Type {
		case "strong":
			text = "**" + text + "**"
		case "em":
			text = "_" + text + "_"
		case "code":
			text = "`" + text + "`"
		case "strike":
			text = "~~" + text + "~~"
		case "link":
			href, _ := m.Attrs["href"].(string)
			text = "[" + text + "](" + href + ")"
		}
	}
	return text
}

func headingLevel(n *Document) int {
	switch v := n.Attrs["level"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 1
}

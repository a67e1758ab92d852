// Package markdown renders the small Markdown subset used in section content.
//
// Every line is classified on its own: headings (#, ##, ###), list items (- ),
// paragraphs and blank lines. Paragraphs never span several lines and lists are
// never nested; authors who need more structure use resources instead.
package markdown

import (
	"regexp"
	"strings"
)

const (
	KindHeading   = "heading"
	KindListItem  = "list_item"
	KindParagraph = "paragraph"
	KindBlank     = "blank"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`)

// Block is one of Heading, ListItem, Paragraph or BlankLine.
type Block interface {
	Kind() string
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type ListItem struct {
	Text string `json:"text"`
}

// Paragraph keeps the raw line in Text and the same line split into
// plain and bold spans in Spans.
type Paragraph struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans"`
}

type BlankLine struct{}

type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

func (Heading) Kind() string   { return KindHeading }
func (ListItem) Kind() string  { return KindListItem }
func (Paragraph) Kind() string { return KindParagraph }
func (BlankLine) Kind() string { return KindBlank }

var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"# ", 1},
	{"## ", 2},
	{"### ", 3},
}

// Render splits content on newlines and classifies each line independently.
// Empty content renders to no blocks.
func Render(content string) []Block {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, renderLine(strings.TrimSuffix(line, "\r")))
	}
	return blocks
}

func renderLine(line string) Block {
	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			return Heading{Level: h.level, Text: line[len(h.prefix):]}
		}
	}

	if strings.HasPrefix(line, "- ") {
		return ListItem{Text: line[2:]}
	}

	if strings.TrimSpace(line) == "" {
		return BlankLine{}
	}

	return Paragraph{Text: line, Spans: Emphasize(line)}
}

// Emphasize resolves paired **bold** and __bold__ delimiters in a single line.
// An unmatched delimiter is kept as literal text.
func Emphasize(line string) []Span {
	matches := boldPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return []Span{{Text: line}}
	}

	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, Span{Text: line[last:m[0]]})
		}

		// group 1 is the ** form, group 2 the __ form
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		spans = append(spans, Span{Text: line[start:end], Bold: true})
		last = m[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

package body

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// RequiredSections are the headings every issue body must contain.
var RequiredSections = []string{
	"Tool",
	"Background",
	"Instructions",
	"Required sections",
	"Validation",
	"Opening a pull request",
	"Acceptance criteria",
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Outline is the structural summary of a Markdown body.
type Outline struct {
	Headings     []string
	Tables       int
	CodeBlocks   int
	OrderedLists int
	TaskItems    int
}

// HasHeading reports whether a heading with exactly this text exists.
func (o Outline) HasHeading(name string) bool {
	for _, h := range o.Headings {
		if h == name {
			return true
		}
	}
	return false
}

// Inspect parses a Markdown body and summarizes its structure.
func Inspect(md string) Outline {
	source := []byte(md)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var o Outline
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			o.Headings = append(o.Headings, strings.TrimSpace(inlineText(node, source)))
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			o.Tables++
		case *ast.FencedCodeBlock:
			o.CodeBlocks++
		case *ast.List:
			if node.IsOrdered() {
				o.OrderedLists++
			}
		case *extast.TaskCheckBox:
			o.TaskItems++
		}
		return ast.WalkContinue, nil
	})
	return o
}

func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, source))
		}
	}
	return buf.String()
}

// Check verifies a rendered body has every required section, the
// reference table, a validation command block, numbered instructions, an
// acceptance checklist, and no leftover placeholders.
func Check(md string) []string {
	var problems []string
	o := Inspect(md)
	for _, s := range RequiredSections {
		if !o.HasHeading(s) {
			problems = append(problems, fmt.Sprintf("missing section %q", s))
		}
	}
	if o.Tables == 0 {
		problems = append(problems, "missing required-sections table")
	}
	if o.CodeBlocks == 0 {
		problems = append(problems, "missing validation command block")
	}
	if o.OrderedLists == 0 {
		problems = append(problems, "missing numbered instructions")
	}
	if o.TaskItems == 0 {
		problems = append(problems, "missing acceptance checklist")
	}
	for _, p := range Residual(md) {
		problems = append(problems, fmt.Sprintf("unreplaced placeholder %q", p))
	}
	return problems
}

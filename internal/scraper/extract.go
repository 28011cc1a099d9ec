package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplate never carries review prose.
const boilerplate = "script, style, noscript, iframe, svg, template, nav, footer, header, aside, form, button, [hidden], [aria-hidden=true]"

// blockTags start and end a paragraph in the output.
var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true, "dd": true, "div": true,
	"dl": true, "dt": true, "figcaption": true, "figure": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "hr": true, "li": true, "main": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// extract returns the document title and all of its visible text, one paragraph
// per block, whitespace collapsed inside each paragraph.
func extract(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}

	title := normalizeSpace(doc.Find("title").First().Text())
	if title == "" {
		title = normalizeSpace(doc.Find("h1").First().Text())
	}

	doc.Find(boilerplate).Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 || normalizeSpace(root.Text()) == "" {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 || normalizeSpace(root.Text()) == "" {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	var w textWriter
	w.walk(root)
	w.flush()

	return title, strings.Join(w.paragraphs, "\n\n"), nil
}

// textWriter collects inline text into the current paragraph until a block
// boundary is reached.
type textWriter struct {
	paragraphs []string
	buf        strings.Builder
}

func (w *textWriter) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch name := goquery.NodeName(c); {
		case name == "#text":
			w.buf.WriteString(c.Text())
		case strings.HasPrefix(name, "#"):
			// comments and doctypes
		case blockTags[name]:
			w.flush()
			w.walk(c)
			w.flush()
		default:
			w.walk(c)
		}
	})
}

func (w *textWriter) flush() {
	if text := normalizeSpace(w.buf.String()); text != "" {
		w.paragraphs = append(w.paragraphs, text)
	}
	w.buf.Reset()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

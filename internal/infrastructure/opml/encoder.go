// Package opml writes feed subscription lists as OPML 2.0 documents.
package opml

import (
	"fmt"
	"io"

	"github.com/gilliek/go-opml/opml"

	"steamfeeds/internal/ports"
)

// Title names the document in its head element.
const Title = "Steam feeds"

// Encoder accumulates outlines and writes them in insertion order.
type Encoder struct {
	outlines []opml.Outline
}

var _ ports.Encoder = (*Encoder)(nil)

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Add appends an RSS outline.
func (e *Encoder) Add(title, url string) {
	e.outlines = append(e.outlines, opml.Outline{
		Text:   title,
		Title:  title,
		Type:   "rss",
		XMLURL: url,
	})
}

// Encode writes the document followed by a newline. The head carries no
// dates so repeated runs produce identical output.
func (e *Encoder) Encode(w io.Writer) error {
	doc := opml.OPML{
		Version: "2.0",
		Head:    opml.Head{Title: Title},
		Body:    opml.Body{Outlines: e.outlines},
	}
	text, err := doc.XML()
	if err != nil {
		return fmt.Errorf("encode opml: %w", err)
	}
	_, err = io.WriteString(w, text+"\n")
	return err
}

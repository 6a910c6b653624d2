package schoology

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

// startLayout is the exact timestamp format the portal emits for event
// start times, in local time.
const startLayout = "2006-01-02 15:04:05"

// Normalize converts a raw portal event into its canonical form. Title and
// course have entities decoded; the HTML body is reduced to plain text. A
// malformed start timestamp is an error so the caller can decide whether to
// skip the event or abort.
func Normalize(raw RawEvent) (Event, error) {
	title := html.UnescapeString(raw.TitleText)

	start, err := time.ParseInLocation(startLayout, html.UnescapeString(raw.Start), time.Local)
	if err != nil {
		return Event{}, fmt.Errorf("event %q has a malformed start time: %w", title, err)
	}

	description, err := bodyText(raw.Body)
	if err != nil {
		return Event{}, fmt.Errorf("event %q has an unparsable body: %w", title, err)
	}

	return Event{
		Title:       title,
		Start:       start,
		Course:      html.UnescapeString(raw.ContentTitle),
		Type:        raw.EType,
		Description: description,
	}, nil
}

// bodyText strips markup from an HTML fragment, joining text chunks with
// newlines so block boundaries survive as line breaks, then decodes entities
// a second time. The body arrives entity-encoded, so decoding must follow
// tag stripping: reversing the order would turn encoded angle brackets into
// markup and strip them.
func bodyText(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var chunks []string
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode && n.Data != "" {
			chunks = append(chunks, n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	text := strings.TrimSpace(strings.Join(chunks, "\n"))
	return html.UnescapeString(text), nil
}

package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// htmlSource scrapes a ranking page containing a single standings table.
//
// The page is expected to hold exactly one <table> with a header row of
// <th> cells and body rows whose <td> cells map 1:1 to the header columns.
// The table is already sorted by the site; row order is preserved as-is.
type htmlSource struct {
	endpoint string
	client   *http.Client
}

func (s *htmlSource) Fetch(ctx context.Context) ([]Entry, error) {
	body, err := fetchBody(ctx, s.client, s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("source: html fetch: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("source: parse html: %w", err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("source: ranking page has no table: %w", ErrFormat)
	}

	headers, rows := tableRows(table)
	if len(headers) == 0 {
		return nil, fmt.Errorf("source: ranking table has no header row: %w", ErrFormat)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("source: ranking table has no body rows: %w", ErrFormat)
	}

	nameCol, scoreCol := pickColumns(headers)

	entries := make([]Entry, 0, len(rows))
	for i, cells := range rows {
		if nameCol >= len(cells) || scoreCol >= len(cells) {
			return nil, fmt.Errorf("source: row %d has %d cells, need %d: %w",
				i, len(cells), len(headers), ErrFormat)
		}
		score, err := parseScore(cells[scoreCol])
		if err != nil {
			return nil, fmt.Errorf("source: row %d score %q: %w", i, cells[scoreCol], ErrFormat)
		}
		entries = append(entries, Entry{Name: cells[nameCol], Score: score})
	}
	return entries, nil
}

// pickColumns locates the team-name and score columns from the header labels.
//
// The name column is the first header containing "team" or "name"
// (case-insensitive); column 0 is never picked because ranking pages put
// their own rank numbering there. The score column is the first header
// containing "score", falling back to the last column.
func pickColumns(headers []string) (nameCol, scoreCol int) {
	nameCol, scoreCol = -1, -1
	for i, h := range headers {
		l := strings.ToLower(h)
		if nameCol < 0 && i > 0 && (strings.Contains(l, "team") || strings.Contains(l, "name")) {
			nameCol = i
		}
		if scoreCol < 0 && strings.Contains(l, "score") {
			scoreCol = i
		}
	}
	if nameCol < 0 {
		if len(headers) > 1 {
			nameCol = 1
		} else {
			nameCol = 0
		}
	}
	if scoreCol < 0 {
		scoreCol = len(headers) - 1
	}
	return nameCol, scoreCol
}

// parseScore converts a score cell to a number. Sites format large scores
// with thousands separators, so commas and inner spaces are stripped first.
func parseScore(text string) (float64, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, text)
	return strconv.ParseFloat(clean, 64)
}

// tableRows walks a <table> node and returns the header cell texts and the
// body rows' cell texts. The header row is the first <tr> containing <th>
// cells; every <tr> with <td> cells is a body row.
func tableRows(table *html.Node) (headers []string, rows [][]string) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			ths := cellTexts(n, "th")
			if len(ths) > 0 && headers == nil {
				headers = ths
				return
			}
			if tds := cellTexts(n, "td"); len(tds) > 0 {
				rows = append(rows, tds)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return headers, rows
}

// cellTexts returns the trimmed text of each direct child cell of tag
// ("th" or "td") under the given row node.
func cellTexts(row *html.Node, tag string) []string {
	var out []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, strings.TrimSpace(nodeText(c)))
		}
	}
	return out
}

// findElement returns the first element named tag in document order.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// nodeText concatenates all text nodes beneath n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

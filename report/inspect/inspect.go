package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument is returned for payloads with no bytes or no pages.
var ErrEmptyDocument = errors.New("empty pdf document")

// Summary is the text content of a rendered report, page by page.
type Summary struct {
	Pages []string
}

// PageCount returns the number of pages in the document.
func (s Summary) PageCount() int {
	return len(s.Pages)
}

// Text joins every page's text.
func (s Summary) Text() string {
	return strings.Join(s.Pages, "\n")
}

// Contains reports whether any page contains needle.
func (s Summary) Contains(needle string) bool {
	for _, page := range s.Pages {
		if strings.Contains(page, needle) {
			return true
		}
	}
	return false
}

// PDF opens an in-memory PDF and extracts the plain text of each page.
// Libraries used: github.com/ledongthuc/pdf.
func PDF(ctx context.Context, data []byte) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if len(data) == 0 {
		return Summary{}, ErrEmptyDocument
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Summary{}, fmt.Errorf("open pdf: %w", err)
	}

	count := reader.NumPage()
	if count == 0 {
		return Summary{}, ErrEmptyDocument
	}

	out := Summary{Pages: make([]string, 0, count)}
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			out.Pages = append(out.Pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Summary{}, fmt.Errorf("page %d text: %w", i, err)
		}
		out.Pages = append(out.Pages, text)
	}
	return out, nil
}

// Expect checks that a rendered report has the given number of pages (when
// pages > 0) and contains every needle.
func Expect(ctx context.Context, data []byte, pages int, needles ...string) (Summary, error) {
	summary, err := PDF(ctx, data)
	if err != nil {
		return Summary{}, err
	}
	if pages > 0 && summary.PageCount() != pages {
		return summary, fmt.Errorf("expected %d pages, found %d", pages, summary.PageCount())
	}
	var missing []string
	for _, needle := range needles {
		if !summary.Contains(needle) {
			missing = append(missing, needle)
		}
	}
	if len(missing) > 0 {
		return summary, fmt.Errorf("missing text: %s", strings.Join(missing, ", "))
	}
	return summary, nil
}

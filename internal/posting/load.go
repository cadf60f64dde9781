package posting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// FetchTimeout bounds a single posting download.
	FetchTimeout = 30 * time.Second
	// MaxPageSize caps the bytes read from a posting page.
	MaxPageSize = 5 << 20

	userAgent = "cv-copilot/1.0"
)

// ErrEmptyPosting is returned when a source yields no text.
var ErrEmptyPosting = errors.New("job posting is empty")

// Content selectors tried in order before falling back to the page body.
var postingSelectors = []string{
	".job-description",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
}

// blockElements end a line when a page is flattened to text.
const blockElements = "p, div, section, article, li, ul, ol, br, h1, h2, h3, h4, h5, h6, tr"

// Load returns the posting text behind source, which is either an http(s) URL or a
// path on disk.
func Load(ctx context.Context, source string) (string, error) {
	var (
		text string
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		text, err = fetch(ctx, source)
	} else {
		var data []byte
		data, err = os.ReadFile(source)
		text = string(data)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", source, ErrEmptyPosting)
	}
	return text, nil
}

func fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, MaxPageSize)
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		data, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", url, err)
		}
		return string(data), nil
	}

	return HTMLText(body)
}

// HTMLText flattens an HTML document to plain text. Scripts and styles are dropped,
// list items become "- " bullets and block elements end a line, so the result can
// be fed to Analyze like any hand-written posting.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer").Remove()

	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("body")
	for _, selector := range postingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			root = sel.First()
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(root.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

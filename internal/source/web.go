package source

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/taletekst/pkg/core/config"
	tterr "github.com/msto63/taletekst/pkg/core/error"
)

var notes = regexp.MustCompile(`\(.+\)|\[.+\]`)

func newHTMLTable(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	if err := require(name, "url", sc.URL); err != nil {
		return nil, err
	}
	if err := require(name, "column", sc.Column); err != nil {
		return nil, err
	}
	if deps.Fetcher == nil {
		return nil, tterr.Newf(tterr.CodeInvalidConfig, "source %q needs a fetcher", name)
	}

	return BuilderFunc(func(ctx context.Context) ([]string, error) {
		page, err := deps.Fetcher.Page(ctx, sc.URL)
		if err != nil {
			return nil, err
		}
		tables := page.Tables()
		if len(tables) == 0 {
			return nil, tterr.New(tterr.CodeSourceFailed, "page has no table").WithDetail("url", sc.URL)
		}
		cells, ok := tables[0].Column(sc.Column)
		if !ok {
			return nil, tterr.Newf(tterr.CodeSourceFailed, "table has no column %q", sc.Column).
				WithDetail("url", sc.URL)
		}
		return StripNotes(cells), nil
	}), nil
}

// StripNotes removes parenthesised and bracketed notes and drops empty and
// duplicate entries, keeping first occurrences
func StripNotes(cells []string) []string {
	seen := make(map[string]bool, len(cells))
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		c = strings.TrimSpace(notes.ReplaceAllString(c, ""))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Traversal is the state of a breadth-first crawl: the pending queue and
// every URL seen so far
type Traversal struct {
	host    string
	scope   string
	queue   []string
	visited map[string]bool
}

// NewTraversal starts a traversal at start. Only URLs on the same host whose
// path starts with scope are followed.
func NewTraversal(start, scope string) (*Traversal, error) {
	u, err := url.Parse(start)
	if err != nil || u.Host == "" {
		return nil, tterr.Newf(tterr.CodeInvalidConfig, "invalid crawl start url %q", start)
	}
	if scope == "" {
		scope = "/"
	}
	t := &Traversal{host: u.Host, scope: scope, visited: make(map[string]bool)}
	t.Enqueue(start)
	return t, nil
}

// Enqueue adds link unless it was seen before or lies outside the scope
func (t *Traversal) Enqueue(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host != t.host || !strings.HasPrefix(u.Path, t.scope) {
		return false
	}
	u.Fragment = ""
	key := u.String()
	if t.visited[key] {
		return false
	}
	t.visited[key] = true
	t.queue = append(t.queue, key)
	return true
}

// Next returns the next URL to fetch
func (t *Traversal) Next() (string, bool) {
	if len(t.queue) == 0 {
		return "", false
	}
	next := t.queue[0]
	t.queue = t.queue[1:]
	return next, true
}

// Seen returns the number of distinct URLs discovered
func (t *Traversal) Seen() int {
	return len(t.visited)
}

func newCrawl(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	if err := require(name, "url", sc.URL); err != nil {
		return nil, err
	}
	if deps.Fetcher == nil {
		return nil, tterr.Newf(tterr.CodeInvalidConfig, "source %q needs a fetcher", name)
	}
	if _, err := NewTraversal(sc.URL, sc.Scope); err != nil {
		return nil, err
	}

	maxPages := sc.MaxPages
	if maxPages <= 0 {
		maxPages = deps.Config.Scraping.MaxPages
	}
	logger := deps.Logger.Named("crawl").WithField("source", name)

	return BuilderFunc(func(ctx context.Context) ([]string, error) {
		t, _ := NewTraversal(sc.URL, sc.Scope)
		var articles []string
		pages, failures := 0, 0

		for pages < maxPages {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			link, ok := t.Next()
			if !ok {
				break
			}

			page, err := deps.Fetcher.Page(ctx, link)
			if err != nil {
				failures++
				logger.Warn("Skipping page", "url", link, "error", err.Error())
				continue
			}
			pages++

			articles = append(articles, page.Paragraphs(sc.Container)...)
			for _, l := range page.Links() {
				t.Enqueue(l)
			}
		}

		if pages == 0 {
			return nil, tterr.New(tterr.CodeSourceFailed, "no page could be fetched").
				WithDetail("url", sc.URL)
		}
		logger.Info("Crawl finished", "pages", pages, "failed", failures, "discovered", t.Seen())

		return Polish(deps.Extractor.Extract(articles)), nil
	}), nil
}

// Polish ends every sentence with punctuation and drops sentences that do
// not start with an upper-case letter
func Polish(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		first, _ := utf8.DecodeRuneInString(s)
		if !unicode.IsUpper(first) {
			continue
		}
		if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "?") && !strings.HasSuffix(s, "!") {
			s += "."
		}
		out = append(out, s)
	}
	return out
}

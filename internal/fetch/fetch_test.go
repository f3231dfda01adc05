package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

const testPage = `<html><head><style>p{}</style></head><body>
<nav><p>Menu</p><a href="/a">A</a><a href="#top">Top</a></nav>
<div class="article main">
  <p>Første   afsnit om
  helbred.</p>
  <p>Andet afsnit – med tankestreg.</p>
</div>
<a href="https://example.org/b#x">B</a>
<a href="mailto:info@example.org">Mail</a>
<a href="/a">A igen</a>
<table>
  <tr><th>Station</th><th>Kommune</th></tr>
  <tr><td>Aarhus H</td><td>Aarhus</td></tr>
  <tr><td>Odense (st.)</td><td>Odense</td></tr>
</table>
</body></html>`

func parseTestPage(t *testing.T) *Page {
	t.Helper()
	p, err := ParsePage("https://example.org/dir/page", strings.NewReader(testPage))
	if err != nil {
		t.Fatalf("ParsePage() error = %v", err)
	}
	return p
}

func TestPage_Paragraphs(t *testing.T) {
	p := parseTestPage(t)

	all := p.Paragraphs("")
	if len(all) != 3 {
		t.Errorf("Paragraphs(\"\") = %q, want 3 paragraphs", all)
	}

	got := p.Paragraphs("article")
	want := []string{"Første afsnit om helbred.", "Andet afsnit - med tankestreg."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs(article) = %q, want %q", got, want)
	}

	if got := p.Paragraphs("missing"); got != nil {
		t.Errorf("Paragraphs(missing) = %q, want nil", got)
	}
}

func TestPage_Links(t *testing.T) {
	got := parseTestPage(t).Links()
	want := []string{
		"https://example.org/a",
		"https://example.org/dir/page",
		"https://example.org/b",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Links() = %q, want %q", got, want)
	}
}

func TestPage_Tables(t *testing.T) {
	tables := parseTestPage(t).Tables()
	if len(tables) != 1 {
		t.Fatalf("Tables() = %d tables, want 1", len(tables))
	}

	col, ok := tables[0].Column("station")
	if !ok {
		t.Fatal("Column(station) not found")
	}
	if !reflect.DeepEqual(col, []string{"Aarhus H", "Odense (st.)"}) {
		t.Errorf("Column(station) = %q", col)
	}

	if _, ok := tables[0].Column("Region"); ok {
		t.Error("Column(Region) found")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a \n\t b – c ", "a b - c"},
		{"Aarhus\u00a0H", "Aarhus H"},
		{"\u00a0søvn\u2009og\u202fro\u00a0", "søvn og ro"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func testClient() *Client {
	return NewClient(Config{
		Retries:   2,
		RetryWait: time.Millisecond,
		Timeout:   5 * time.Second,
		UserAgent: "taletekst-test",
	}, nil)
}

func TestClient_Get(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	page, err := testClient().Page(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if agent != "taletekst-test" {
		t.Errorf("User-Agent = %q", agent)
	}
	if len(page.Paragraphs("article")) != 2 {
		t.Errorf("Paragraphs = %q", page.Paragraphs("article"))
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "ok" || calls.Load() != 3 {
		t.Errorf("body = %q after %d calls", body, calls.Load())
	}
}

func TestClient_NotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	if !tterr.HasCode(err, tterr.CodeFetchFailed) {
		t.Errorf("error = %v, want FETCH_FAILED", err)
	}
	if calls.Load() != 1 {
		t.Errorf("404 retried: %d calls", calls.Load())
	}
}

func TestClient_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(Config{Timeout: 5 * time.Second, CacheTTL: time.Minute}, nil)
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("first request did not fail")
	}
	for range 2 {
		if body, err := c.Get(context.Background(), srv.URL); err != nil || string(body) != "ok" {
			t.Fatalf("Get() = %q, %v", body, err)
		}
	}

	if calls.Load() != 2 {
		t.Errorf("server saw %d requests, want 2", calls.Load())
	}
	if hits, misses := c.CacheStats(); hits != 1 || misses != 2 {
		t.Errorf("CacheStats() = %d, %d", hits, misses)
	}
}

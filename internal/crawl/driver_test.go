package crawl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NFliegel/crawler-99spokes/internal/config"
	"github.com/NFliegel/crawler-99spokes/internal/fetch"
	"github.com/NFliegel/crawler-99spokes/internal/log"
	"github.com/NFliegel/crawler-99spokes/internal/model"
)

// fixtureSite builds an httptest server serving a small catalog:
// one year (2024) with two brands (trek, giant), one model each.
// Callers can override individual paths before starting the crawl.
func fixtureSite(t *testing.T) (*httptest.Server, map[string]string) {
	t.Helper()

	pages := map[string]string{
		"/bikes": `<html><body>
			<a href="/bikes/2024/">2024</a>
			<a href="/about">About</a>
		</body></html>`,
		"/bikes/2024/": `<html><body>
			<a href="/bikes/2024/trek/">Trek</a>
			<a href="/bikes/2024/giant/">Giant</a>
		</body></html>`,
		"/bikes/2024/trek/": `<html><body>
			<a href="/bikes/2024/trek/domane/">Domane</a>
		</body></html>`,
		"/bikes/2024/giant/": `<html><body>
			<a href="/bikes/2024/giant/defy/">Defy</a>
		</body></html>`,
		"/bikes/2024/trek/domane/":  detailPage("Trek Domane", "$2,499"),
		"/bikes/2024/giant/defy/":   detailPage("Giant Defy", "$1,899"),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	return server, pages
}

// detailPage renders a minimal model detail page.
func detailPage(name, price string) string {
	return fmt.Sprintf(`<html><body>
		<h1>%s</h1>
		<span class="price">%s</span>
		<span class="availability">In stock</span>
		<img src="/images/bike.jpg">
		<table class="specs">
			<tr><th>Frame</th><td>Carbon</td></tr>
		</table>
	</body></html>`, name, price)
}

// newTestDriver creates a driver against the given server with zero
// crawl delay and no retries.
func newTestDriver(t *testing.T, baseURL string, mutate func(*config.Config)) *Driver {
	t.Helper()

	cfg := config.NewConfig()
	cfg.BaseURL = baseURL
	cfg.CrawlDelay = 0
	cfg.MaxRetries = 0
	if mutate != nil {
		mutate(cfg)
	}

	fetcher := fetch.New(
		fetch.WithTimeout(5*time.Second),
		fetch.WithRetry(0, time.Millisecond, time.Millisecond),
	)
	logger := log.NewLogger(io.Discard, false)

	driver, err := New(cfg, fetcher, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return driver
}

// TestDriver_Run_CollectsRecords tests a full walk over the fixture site.
func TestDriver_Run_CollectsRecords(t *testing.T) {
	t.Parallel()

	server, _ := fixtureSite(t)
	driver := newTestDriver(t, server.URL, nil)

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 2; got != want {
		t.Fatalf("len(Records) = %d, want %d", got, want)
	}
	if got, want := len(catalog.Skips), 0; got != want {
		t.Errorf("len(Skips) = %d, want %d", got, want)
	}
	// Root + year + 2 brand listings + 2 detail pages.
	if got, want := catalog.Stats.PagesFetched, 6; got != want {
		t.Errorf("PagesFetched = %d, want %d", got, want)
	}

	rec := catalog.Records[0]
	if rec.Year != "2024" {
		t.Errorf("Year = %q, want %q", rec.Year, "2024")
	}
	if rec.Brand != "Trek" {
		t.Errorf("Brand = %q, want %q", rec.Brand, "Trek")
	}
	if rec.Model != "Trek Domane" {
		t.Errorf("Model = %q, want %q", rec.Model, "Trek Domane")
	}
	if rec.Price == nil || *rec.Price != 2499 {
		t.Errorf("Price = %v, want 2499", rec.Price)
	}
	if frame, ok := rec.Attribute("Frame"); !ok || frame != "Carbon" {
		t.Errorf("Attribute(Frame) = %q, %v; want Carbon, true", frame, ok)
	}
}

// TestDriver_Run_SkipsFailedSubtree tests that a failing brand page
// abandons only that brand.
func TestDriver_Run_SkipsFailedSubtree(t *testing.T) {
	t.Parallel()

	server, pages := fixtureSite(t)
	delete(pages, "/bikes/2024/trek/") // brand listing now 404s
	driver := newTestDriver(t, server.URL, nil)

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 1; got != want {
		t.Fatalf("len(Records) = %d, want %d", got, want)
	}
	if catalog.Records[0].Brand != "Giant" {
		t.Errorf("Brand = %q, want %q", catalog.Records[0].Brand, "Giant")
	}

	if got, want := len(catalog.Skips), 1; got != want {
		t.Fatalf("len(Skips) = %d, want %d", got, want)
	}
	skip := catalog.Skips[0]
	if skip.Level != model.LevelModels {
		t.Errorf("Skip.Level = %v, want %v", skip.Level, model.LevelModels)
	}
	if skip.Reason == "" {
		t.Error("Skip.Reason is empty, want failure description")
	}
}

// TestDriver_Run_SkipsMalformedDetail tests that a detail page without a
// model name is skipped without aborting the brand.
func TestDriver_Run_SkipsMalformedDetail(t *testing.T) {
	t.Parallel()

	server, pages := fixtureSite(t)
	pages["/bikes/2024/trek/domane/"] = `<html><body><p>coming soon</p></body></html>`
	driver := newTestDriver(t, server.URL, nil)

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 1; got != want {
		t.Fatalf("len(Records) = %d, want %d", got, want)
	}
	if got, want := len(catalog.Skips), 1; got != want {
		t.Fatalf("len(Skips) = %d, want %d", got, want)
	}
	if catalog.Skips[0].Level != model.LevelDetail {
		t.Errorf("Skip.Level = %v, want %v", catalog.Skips[0].Level, model.LevelDetail)
	}
}

// TestDriver_Run_RootFailure tests that a failing years page yields an
// empty catalog with a single recorded skip, not an error.
func TestDriver_Run_RootFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	driver := newTestDriver(t, server.URL, nil)

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 0; got != want {
		t.Errorf("len(Records) = %d, want %d", got, want)
	}
	if got, want := len(catalog.Skips), 1; got != want {
		t.Fatalf("len(Skips) = %d, want %d", got, want)
	}
	if catalog.Skips[0].Level != model.LevelYears {
		t.Errorf("Skip.Level = %v, want %v", catalog.Skips[0].Level, model.LevelYears)
	}
}

// TestDriver_Run_BrandFilter tests that the brand filter limits which
// subtrees are visited.
func TestDriver_Run_BrandFilter(t *testing.T) {
	t.Parallel()

	server, _ := fixtureSite(t)
	driver := newTestDriver(t, server.URL, func(cfg *config.Config) {
		cfg.Brands = []string{"giant"}
	})

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 1; got != want {
		t.Fatalf("len(Records) = %d, want %d", got, want)
	}
	if catalog.Records[0].Brand != "Giant" {
		t.Errorf("Brand = %q, want %q", catalog.Records[0].Brand, "Giant")
	}
}

// TestDriver_Run_YearFilter tests that years outside the filter are not
// descended into.
func TestDriver_Run_YearFilter(t *testing.T) {
	t.Parallel()

	server, pages := fixtureSite(t)
	pages["/bikes"] = `<html><body>
		<a href="/bikes/2023/">2023</a>
		<a href="/bikes/2024/">2024</a>
	</body></html>`
	// 2023 intentionally has no pages; filtering must prevent any
	// requests for it, so no skip should appear.
	driver := newTestDriver(t, server.URL, func(cfg *config.Config) {
		cfg.Years = []string{"2024"}
	})

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 2; got != want {
		t.Errorf("len(Records) = %d, want %d", got, want)
	}
	if got, want := len(catalog.Skips), 0; got != want {
		t.Errorf("len(Skips) = %d, want %d", got, want)
	}
}

// TestDriver_Run_MaxModels tests that the model cap stops the walk
// after the configured number of detail pages.
func TestDriver_Run_MaxModels(t *testing.T) {
	t.Parallel()

	server, _ := fixtureSite(t)
	driver := newTestDriver(t, server.URL, func(cfg *config.Config) {
		cfg.MaxModels = 1
	})

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 1; got != want {
		t.Errorf("len(Records) = %d, want %d", got, want)
	}
}

// TestDriver_Run_Pagination tests that a paginated model listing is
// followed to completion.
func TestDriver_Run_Pagination(t *testing.T) {
	t.Parallel()

	server, pages := fixtureSite(t)
	// The fixture handler keys pages by path only, so the second listing
	// page lives under a distinct path reached via rel="next".
	pages["/bikes/2024/trek/"] = `<html><body>
		<a href="/bikes/2024/trek/domane/">Domane</a>
		<a rel="next" href="/bikes/2024/trek/page2">Next</a>
	</body></html>`
	pages["/bikes/2024/trek/page2"] = `<html><body>
		<a href="/bikes/2024/trek/emonda/">Emonda</a>
	</body></html>`
	pages["/bikes/2024/trek/emonda/"] = detailPage("Trek Emonda", "$3,499")

	driver := newTestDriver(t, server.URL, func(cfg *config.Config) {
		cfg.Brands = []string{"trek"}
	})

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 2; got != want {
		t.Fatalf("len(Records) = %d, want %d", got, want)
	}
	if catalog.Records[1].Model != "Trek Emonda" {
		t.Errorf("Records[1].Model = %q, want %q", catalog.Records[1].Model, "Trek Emonda")
	}
}

// TestDriver_Run_DuplicateModelLinks tests that a model linked from two
// listing pages is fetched only once.
func TestDriver_Run_DuplicateModelLinks(t *testing.T) {
	t.Parallel()

	server, pages := fixtureSite(t)
	pages["/bikes/2024/trek/"] = `<html><body>
		<a href="/bikes/2024/trek/domane/">Domane</a>
		<a href="/bikes/2024/trek/domane/">Domane (featured)</a>
		<a href="/bikes/2024/trek/domane">Domane (no trailing slash)</a>
	</body></html>`

	driver := newTestDriver(t, server.URL, func(cfg *config.Config) {
		cfg.Brands = []string{"trek"}
	})

	catalog, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := len(catalog.Records), 1; got != want {
		t.Errorf("len(Records) = %d, want %d", got, want)
	}
}

// TestDriver_Run_ContextCancellation tests that a cancelled context
// stops the walk with the context error.
func TestDriver_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	server, _ := fixtureSite(t)
	driver := newTestDriver(t, server.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog, err := driver.Run(ctx)
	if err == nil {
		t.Fatal("Run() error = nil, want context error")
	}
	if catalog == nil {
		t.Fatal("Run() catalog = nil, want partial catalog")
	}
}

package crawl

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/NFliegel/crawler-99spokes/internal/config"
	"github.com/NFliegel/crawler-99spokes/internal/model"
	"github.com/NFliegel/crawler-99spokes/internal/parse"
)

// ListingRoot is the path of the years listing page relative to the
// site's base URL.
const ListingRoot = "/bikes"

// maxListingPages caps how many pages of one brand's model listing are
// followed via pagination. Guards against pagination loops on a site
// whose markup we do not control.
const maxListingPages = 50

// errModelCapReached signals that the configured model cap was hit.
// It stops the walk cleanly and is never surfaced to the caller.
var errModelCapReached = errors.New("model cap reached")

// PageFetcher retrieves the body of a single page.
// *fetch.Fetcher satisfies this; tests substitute their own.
type PageFetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Driver walks the catalog hierarchy and collects model records.
//
// Design decision: We require an external fetcher because:
//  1. HTTP behavior (retries, timeouts) is handled by the fetch package
//  2. Allows for different configurations in tests
type Driver struct {
	// fetcher retrieves page bodies.
	fetcher PageFetcher

	// listing parses the year, brand, and model listing pages.
	listing *parse.Listing

	// detail parses model detail pages.
	detail *parse.Detail

	// cfg carries filters, delays, and the model cap.
	cfg *config.Config

	// logger receives progress and skip events.
	logger *slog.Logger

	// visited tracks detail pages already fetched in this run, keyed
	// by year/brand/model so URL variants of one page count once.
	visited map[string]bool

	// modelCount counts detail pages fetched, for the MaxModels cap.
	modelCount int
}

// New creates a Driver for the site named in the configuration.
func New(cfg *config.Config, fetcher PageFetcher, logger *slog.Logger) (*Driver, error) {
	listing, err := parse.NewListing(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	detail, err := parse.NewDetail(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Driver{
		fetcher: fetcher,
		listing: listing,
		detail:  detail,
		cfg:     cfg,
		logger:  logger,
		visited: make(map[string]bool),
	}, nil
}

// Run performs one complete crawl and returns the collected catalog.
//
// The returned catalog is valid even when err is non-nil: cancellation
// mid-run leaves the records collected so far in place, so the caller
// can still write a partial result.
func (d *Driver) Run(ctx context.Context) (*model.Catalog, error) {
	catalog := model.NewCatalog(d.cfg.BaseURL)
	defer func() {
		catalog.Stats.Duration = time.Since(catalog.Stats.StartedAt)
	}()

	rootURL := strings.TrimRight(d.cfg.BaseURL, "/") + ListingRoot
	d.logger.Info("crawl started", "url", rootURL)

	body, err := d.fetchPage(ctx, catalog, rootURL, d.cfg.CrawlDelay)
	if err != nil {
		if isCancel(err) {
			return catalog, err
		}
		d.skip(catalog, model.LevelYears, rootURL, err)
		return catalog, nil
	}

	years, err := d.listing.Years(strings.NewReader(body), rootURL)
	if err != nil {
		d.skip(catalog, model.LevelYears, rootURL, err)
		return catalog, nil
	}

	for _, year := range years {
		if !d.cfg.YearAllowed(year.Year) {
			continue
		}
		if err := d.crawlYear(ctx, catalog, year); err != nil {
			if errors.Is(err, errModelCapReached) {
				d.logger.Info("model cap reached, stopping", "cap", d.cfg.MaxModels)
				return catalog, nil
			}
			return catalog, err
		}
	}

	d.logger.Info("crawl finished",
		"pages", catalog.Stats.PagesFetched,
		"records", catalog.Stats.RecordsEmitted,
		"skips", catalog.Stats.SubtreesSkipped)
	return catalog, nil
}

// crawlYear walks one year's subtree. Fetch or parse failures are
// recorded as a skip and reported as nil; only cancellation and the
// model cap propagate as errors.
func (d *Driver) crawlYear(ctx context.Context, catalog *model.Catalog, year model.YearEntry) error {
	delay := d.cfg.DelayFor(year.Year)

	body, err := d.fetchPage(ctx, catalog, year.Link, delay)
	if err != nil {
		if isCancel(err) {
			return err
		}
		d.skip(catalog, model.LevelBrands, year.Link, err)
		return nil
	}

	brands, err := d.listing.Brands(strings.NewReader(body), year.Link, year.Year)
	if err != nil {
		d.skip(catalog, model.LevelBrands, year.Link, err)
		return nil
	}

	for _, brand := range brands {
		if !d.cfg.BrandAllowed(year.Year, brand.Slug) {
			continue
		}
		if err := d.crawlBrand(ctx, catalog, year, brand, delay); err != nil {
			return err
		}
	}
	return nil
}

// crawlBrand walks one brand's model listing, following pagination, and
// visits each model's detail page.
func (d *Driver) crawlBrand(ctx context.Context, catalog *model.Catalog, year model.YearEntry, brand model.BrandEntry, delay time.Duration) error {
	pageURL := brand.Link

	for page := 0; pageURL != "" && page < maxListingPages; page++ {
		body, err := d.fetchPage(ctx, catalog, pageURL, delay)
		if err != nil {
			if isCancel(err) {
				return err
			}
			d.skip(catalog, model.LevelModels, pageURL, err)
			return nil
		}

		models, next, err := d.listing.Models(strings.NewReader(body), pageURL, year.Year, brand.Slug)
		if err != nil {
			d.skip(catalog, model.LevelModels, pageURL, err)
			return nil
		}

		for _, entry := range models {
			key := year.Year + "/" + brand.Slug + "/" + entry.Slug
			if d.visited[key] {
				continue
			}
			d.visited[key] = true

			if err := d.crawlModel(ctx, catalog, year, brand, entry, delay); err != nil {
				return err
			}
		}

		pageURL = next
	}
	return nil
}

// crawlModel fetches and parses one detail page and appends the record.
func (d *Driver) crawlModel(ctx context.Context, catalog *model.Catalog, year model.YearEntry, brand model.BrandEntry, entry model.ModelEntry, delay time.Duration) error {
	body, err := d.fetchPage(ctx, catalog, entry.Link, delay)
	if err != nil {
		if isCancel(err) {
			return err
		}
		d.skip(catalog, model.LevelDetail, entry.Link, err)
		return nil
	}

	rec, err := d.detail.Record(strings.NewReader(body), entry.Link)
	if err != nil {
		d.skip(catalog, model.LevelDetail, entry.Link, err)
		return nil
	}

	// Year and brand come from the traversal position, not the page.
	rec.Year = year.Year
	rec.Brand = brand.DisplayName()

	if err := catalog.AddRecord(*rec); err != nil {
		d.skip(catalog, model.LevelDetail, entry.Link, err)
		return nil
	}
	d.logger.Debug("record collected", "year", rec.Year, "brand", rec.Brand, "model", rec.Model)

	d.modelCount++
	if d.cfg.MaxModels > 0 && d.modelCount >= d.cfg.MaxModels {
		return errModelCapReached
	}
	return nil
}

// fetchPage retrieves one page, updates the fetch counter, and applies
// the politeness delay before returning.
func (d *Driver) fetchPage(ctx context.Context, catalog *model.Catalog, url string, delay time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.logger.Debug("fetching", "url", url)
	body, err := d.fetcher.Get(ctx, url)
	if err != nil {
		return "", err
	}
	catalog.Stats.PagesFetched++

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return body, nil
}

// skip records an abandoned subtree on the catalog and logs it.
func (d *Driver) skip(catalog *model.Catalog, level model.Level, url string, err error) {
	catalog.AddSkip(level, url, err)
	d.logger.Warn("subtree skipped", "level", level.String(), "url", url, "reason", err.Error())
}

// isCancel reports whether err is a context cancellation rather than a
// page-level failure. Cancellation stops the walk; everything else
// downgrades to a skip.
func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package model

import (
	"sort"
	"time"
)

// Skip records a subtree that was abandoned during the crawl.
// Fetch and parse failures downgrade to a Skip; the crawl itself
// continues with the next sibling at the same level.
type Skip struct {
	// Level is the hierarchy level at which the failure occurred.
	Level Level `json:"level"`

	// URL is the page that failed to fetch or parse.
	URL string `json:"url"`

	// Reason is the failure description, taken from the underlying error.
	Reason string `json:"reason"`

	// Time is when the failure was recorded.
	Time time.Time `json:"time"`
}

// Stats summarizes a crawl run.
type Stats struct {
	// PagesFetched counts successful page fetches across all levels.
	PagesFetched int `json:"pages_fetched"`

	// RecordsEmitted counts complete ModelRecords collected.
	RecordsEmitted int `json:"records_emitted"`

	// SubtreesSkipped counts fetch/parse failures that were downgraded
	// to skips.
	SubtreesSkipped int `json:"subtrees_skipped"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the crawl.
	Duration time.Duration `json:"duration"`
}

// Catalog is the aggregate result of one crawl run: every complete
// record, every recorded skip, and run statistics. It is handed to
// the output writers once the traversal terminates.
type Catalog struct {
	// BaseURL is the site the catalog was crawled from.
	BaseURL string `json:"base_url"`

	// Records holds the extracted model records in emission order.
	Records []ModelRecord `json:"records"`

	// Skips holds the recorded subtree failures in occurrence order.
	Skips []Skip `json:"skips,omitempty"`

	// Stats summarizes the run.
	Stats Stats `json:"stats"`
}

// NewCatalog creates an empty catalog for the given site.
func NewCatalog(baseURL string) *Catalog {
	return &Catalog{
		BaseURL: baseURL,
		Records: make([]ModelRecord, 0),
		Skips:   make([]Skip, 0),
		Stats:   Stats{StartedAt: time.Now()},
	}
}

// AddRecord validates rec, appends it, and updates the statistics.
// The returned error names the check that failed; partial or malformed
// records are never emitted.
func (c *Catalog) AddRecord(rec ModelRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	c.Records = append(c.Records, rec)
	c.Stats.RecordsEmitted++
	return nil
}

// AddSkip records an abandoned subtree.
func (c *Catalog) AddSkip(level Level, url string, err error) {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	c.Skips = append(c.Skips, Skip{
		Level:  level,
		URL:    url,
		Reason: reason,
		Time:   time.Now(),
	})
	c.Stats.SubtreesSkipped++
}

// Brands returns the distinct brand identifiers present in the catalog,
// sorted alphabetically. Used by the summary writers.
func (c *Catalog) Brands() []string {
	seen := make(map[string]bool)
	brands := make([]string, 0)
	for _, rec := range c.Records {
		if !seen[rec.Brand] {
			seen[rec.Brand] = true
			brands = append(brands, rec.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

// RecordsByBrand returns the number of records per brand identifier.
func (c *Catalog) RecordsByBrand() map[string]int {
	counts := make(map[string]int)
	for _, rec := range c.Records {
		counts[rec.Brand]++
	}
	return counts
}

// AttributeKeys returns the union of attribute names across all records,
// sorted alphabetically. The CSV writer uses this to build a stable
// header for the flattened attribute columns.
func (c *Catalog) AttributeKeys() []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, rec := range c.Records {
		for k := range rec.Attributes {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

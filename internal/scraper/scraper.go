// Package scraper fetches a trending listing page and extracts one record
// per listing row. It degrades per row instead of failing the whole page:
// an unparseable star count becomes 0, a missing velocity phrase becomes nil.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/pkg/log"
)

const repoHost = "https://github.com"

// FetchError reports a non-success response from the listing page.
type FetchError struct {
	StatusCode int
	Status     string
	Url        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %d %s -> %s", e.StatusCode, e.Status, e.Url)
}

type Scraper struct {
	Logger log.Logger
	Config *cfg.Config
	client *http.Client
}

func NewScraper(logger log.Logger, config *cfg.Config) (*Scraper, error) {
	timeoutSec := config.Trending.FetchTimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = 15
	}

	return &Scraper{
		Logger: logger,
		Config: config,
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}, nil
}

// FetchTrending downloads one listing page and returns its rows in document
// order, which is rank order on the source listing.
func (s *Scraper) FetchTrending(ctx context.Context, listingType model.ListingType, opts FetchOptions) ([]model.TrendingRepo, error) {
	since := opts.Since
	if since == "" {
		since = model.SinceDaily
	}

	fullUrl := BuildURL(s.Config.Trending.BaseUrl, listingType, opts)
	s.Logger.Debug(ctx, "Fetching trending listing: %s", fullUrl)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("User-Agent", s.Config.Trending.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Url:        fullUrl,
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot parse listing document: %w", err)
	}

	repos := make([]model.TrendingRepo, 0)
	doc.Find("article.Box-row").Each(func(_ int, row *goquery.Selection) {
		repos = append(repos, extractRow(row, since))
	})

	return repos, nil
}

func extractRow(row *goquery.Selection, since model.Since) model.TrendingRepo {
	titleLink := row.Find("h2 a").First()
	titleText := strings.Join(strings.Fields(titleLink.Text()), "")
	owner, repoName := SplitOwnerRepo(titleText)

	var repoUrl *string
	if href, ok := titleLink.Attr("href"); ok && href != "" {
		u := repoHost + href
		repoUrl = &u
	}

	// Description markup varies by row type; try the tighter selector first
	var description *string
	descText := strings.TrimSpace(row.Find("p.col-9.color-fg-muted.my-1.pr-4").Text())
	if descText == "" {
		descText = strings.TrimSpace(row.Find("p.color-fg-muted.my-1").Text())
	}
	if descText != "" {
		description = &descText
	}

	stars := 0
	starText := strings.TrimSpace(row.Find(`a[href$="/stargazers"]`).First().Text())
	if n, err := strconv.Atoi(strings.ReplaceAll(starText, ",", "")); err == nil {
		stars = n
	}

	rightText := strings.TrimSpace(row.Find(".float-sm-right").Text())
	if rightText == "" {
		rightText = strings.TrimSpace(row.Find("span.d-inline-block.float-sm-right").Text())
	}
	starsSince := ParseStarsSince(rightText, since)

	return model.TrendingRepo{
		Owner:       owner,
		Repo:        repoName,
		Url:         repoUrl,
		Description: description,
		Language:    nil,
		Stars:       stars,
		StarsSince:  starsSince,
	}
}

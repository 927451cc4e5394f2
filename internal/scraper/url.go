package scraper

import (
	"net/url"

	"github.com/thep200/trending-crawler/internal/model"
)

// FetchOptions scope one listing fetch. Language and SpokenLanguageCode are
// optional; an empty Since means daily.
type FetchOptions struct {
	Language           string
	Since              model.Since
	SpokenLanguageCode string
}

// BuildURL produces the listing URL for the given kind and options. Pure and
// deterministic; the base URL is configurable so tests can point it at a
// fixture server.
func BuildURL(baseUrl string, listingType model.ListingType, opts FetchOptions) string {
	typeSeg := ""
	if listingType == model.TypeDevelopers {
		typeSeg = "/developers"
	}

	langSeg := ""
	if opts.Language != "" {
		langSeg = "/" + url.PathEscape(opts.Language)
	}

	since := opts.Since
	if since == "" {
		since = model.SinceDaily
	}

	query := url.Values{}
	query.Set("since", string(since))
	if opts.SpokenLanguageCode != "" {
		query.Set("spoken_language_code", opts.SpokenLanguageCode)
	}

	return baseUrl + langSeg + typeSeg + "?" + query.Encode()
}

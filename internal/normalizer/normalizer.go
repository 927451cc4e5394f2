// Package normalizer turns scraped rows into the persisted slim shape.
package normalizer

import (
	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
)

// Threshold looks up the minimum star velocity required for a language.
// Languages missing from the table are not filtered at all.
func Threshold(config *cfg.Config, language string) int {
	return config.Trending.Thresholds[language]
}

// Normalize drops rows whose gained-star count is below the threshold and
// projects the survivors to SlimRepo. A nil velocity counts as 0 here. Every
// item in one run carries the same dateAdded stamp, supplied by the caller.
// Rows sharing a url collapse onto the first occurrence; document order is
// preserved.
func Normalize(records []model.TrendingRepo, threshold int, today string) []model.SlimRepo {
	slim := make([]model.SlimRepo, 0, len(records))
	for _, r := range records {
		gained := 0
		if r.StarsSince != nil {
			gained = *r.StarsSince
		}
		if gained < threshold {
			continue
		}

		slim = model.UpsertByUrl(slim, model.SlimRepo{
			Url:         r.Url,
			Description: r.Description,
			Stars:       r.Stars,
			StarsSince:  gained,
			DateAdded:   today,
		})
	}
	return slim
}

package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thep200/trending-crawler/internal/model"
)

const testBaseUrl = "https://github.com/trending"

func TestBuildURL_Repositories(t *testing.T) {
	got := BuildURL(testBaseUrl, model.TypeRepositories, FetchOptions{
		Language: "go",
		Since:    model.SinceDaily,
	})
	assert.Equal(t, "https://github.com/trending/go?since=daily", got)
}

func TestBuildURL_Developers(t *testing.T) {
	got := BuildURL(testBaseUrl, model.TypeDevelopers, FetchOptions{
		Language: "rust",
		Since:    model.SinceWeekly,
	})
	assert.Equal(t, "https://github.com/trending/rust/developers?since=weekly", got)
}

func TestBuildURL_NoLanguage(t *testing.T) {
	got := BuildURL(testBaseUrl, model.TypeRepositories, FetchOptions{
		Since: model.SinceMonthly,
	})
	assert.Equal(t, "https://github.com/trending?since=monthly", got)
}

func TestBuildURL_DefaultsToDaily(t *testing.T) {
	got := BuildURL(testBaseUrl, model.TypeRepositories, FetchOptions{Language: "go"})
	assert.Equal(t, "https://github.com/trending/go?since=daily", got)
}

func TestBuildURL_EncodesLanguageSegment(t *testing.T) {
	got := BuildURL(testBaseUrl, model.TypeRepositories, FetchOptions{
		Language: "jupyter notebook",
		Since:    model.SinceDaily,
	})
	assert.Equal(t, "https://github.com/trending/jupyter%20notebook?since=daily", got)
}

func TestBuildURL_SpokenLanguage(t *testing.T) {
	got := BuildURL(testBaseUrl, model.TypeRepositories, FetchOptions{
		Language:           "go",
		Since:              model.SinceDaily,
		SpokenLanguageCode: "en",
	})
	assert.Equal(t, "https://github.com/trending/go?since=daily&spoken_language_code=en", got)
}

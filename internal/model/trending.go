package model

import "fmt"

// Since is the recency window a trending listing is measured over.
type Since string

const (
	SinceDaily   Since = "daily"
	SinceWeekly  Since = "weekly"
	SinceMonthly Since = "monthly"
)

// ParseSince validates a raw window value. Unknown values are rejected so
// callers can fall back to their own default.
func ParseSince(raw string) (Since, bool) {
	switch Since(raw) {
	case SinceDaily, SinceWeekly, SinceMonthly:
		return Since(raw), true
	}
	return "", false
}

// ListingType is the kind of catalog being scraped.
type ListingType string

const (
	TypeRepositories ListingType = "repositories"
	TypeDevelopers   ListingType = "developers"
)

func ParseListingType(raw string) (ListingType, bool) {
	switch ListingType(raw) {
	case TypeRepositories, TypeDevelopers:
		return ListingType(raw), true
	}
	return "", false
}

// TrendingRepo is one scraped listing row. It only lives for the duration of
// a single fetch; the catalog language is supplied per request, not per row,
// so Language stays nil here.
type TrendingRepo struct {
	Owner       string
	Repo        string
	Url         *string
	Description *string
	Language    *string
	Stars       int
	StarsSince  *int
}

// SlimRepo is the persisted projection of a scraped row. StarsSince is always
// a concrete number here; the nil-means-unknown distinction ends at
// normalization time.
type SlimRepo struct {
	Url         *string `json:"url" bson:"url"`
	Description *string `json:"description" bson:"description"`
	Stars       int     `json:"stars" bson:"stars"`
	StarsSince  int     `json:"starsSince" bson:"starsSince"`
	DateAdded   string  `json:"dateAdded" bson:"dateAdded"`
}

// TrendingSnapshot is one stored observation of a language's trending list.
// At most one snapshot exists per (language, type, since, day).
type TrendingSnapshot struct {
	Language string      `json:"language" bson:"language"`
	Type     ListingType `json:"type" bson:"type"`
	Since    Since       `json:"since" bson:"since"`
	Month    string      `json:"month" bson:"month"`
	Day      string      `json:"day" bson:"day"`
	Items    []SlimRepo  `json:"items" bson:"items"`
}

// Key is the composite identity used for upserts on both backends.
func (s *TrendingSnapshot) Key() string {
	return fmt.Sprintf("%s_%s_%s_%s", s.Language, s.Type, s.Since, s.Day)
}

// Query filters snapshot reads. Zero-valued fields match any snapshot; set
// fields are conjunctive.
type Query struct {
	Language string
	Type     ListingType
	Since    Since
	Month    string
	Day      string
}

func (q Query) Matches(s TrendingSnapshot) bool {
	if q.Language != "" && q.Language != s.Language {
		return false
	}
	if q.Type != "" && q.Type != s.Type {
		return false
	}
	if q.Since != "" && q.Since != s.Since {
		return false
	}
	if q.Month != "" && q.Month != s.Month {
		return false
	}
	if q.Day != "" && q.Day != s.Day {
		return false
	}
	return true
}

// UpsertByUrl merges an incoming record into a slim list keyed by url.
// Records without a url cannot be identified, so they are appended as-is;
// existing entries keep their dateAdded from the first observation.
func UpsertByUrl(items []SlimRepo, incoming SlimRepo) []SlimRepo {
	if incoming.Url == nil {
		return append(items, incoming)
	}
	for i := range items {
		if items[i].Url != nil && *items[i].Url == *incoming.Url {
			items[i].Stars = incoming.Stars
			items[i].StarsSince = incoming.StarsSince
			items[i].Description = incoming.Description
			return items
		}
	}
	return append(items, incoming)
}

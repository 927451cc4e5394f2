package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/thep200/trending-crawler/internal/model"
)

var sincePatterns = map[model.Since]*regexp.Regexp{
	model.SinceDaily:   regexp.MustCompile(`(?i)([\d,]+)\s+stars?\s+today`),
	model.SinceWeekly:  regexp.MustCompile(`(?i)([\d,]+)\s+stars?\s+this\s+week`),
	model.SinceMonthly: regexp.MustCompile(`(?i)([\d,]+)\s+stars?\s+this\s+month`),
}

// anySincePattern catches phrases that do not match the requested window.
// The listing sometimes renders a different window than the one asked for.
var anySincePattern = regexp.MustCompile(`(?i)([\d,]+)\s+stars?\s+(today|this\s+week|this\s+month)`)

// ParseStarsSince extracts the gained-star count from a listing phrase.
// Returns nil when no numeral is present; zero and unknown are different
// things and must stay different.
func ParseStarsSince(raw string, since model.Since) *int {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil
	}

	var m []string
	if pattern, ok := sincePatterns[since]; ok {
		m = pattern.FindStringSubmatch(t)
	}
	if m == nil {
		m = anySincePattern.FindStringSubmatch(t)
	}
	if m == nil {
		return nil
	}

	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

// SplitOwnerRepo splits a compact "owner/repo" token. Callers strip the
// whitespace beforehand. Missing slash yields two empty strings.
func SplitOwnerRepo(title string) (string, string) {
	parts := strings.Split(title, "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

package solutions

import (
	"fmt"
	"regexp"
	"strings"

	"contest-compass/internal/platforms"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	leetcodeRe   = regexp.MustCompile(`\b(weekly|biweekly)\s+contest\s+(\d+)\b`)
	codeforcesRe = regexp.MustCompile(`\bcodeforces\s+(?:round|educational)\s+(\d+)(?:\s*(?:div\s*(\d+)|rated|unrated))?\b`)
	codechefRe   = regexp.MustCompile(`\b(starters|cookoff|lunchtime|long challenge)\s+(\d+)\b`)
)

// cleanTitle normalizes a title for matching: lower-case, strip anything
// outside [a-z0-9\s], collapse whitespace runs, trim.
func cleanTitle(title string) string {
	s := strings.ToLower(title)
	s = nonAlnumRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Target identifies a contest precisely enough to recognize its solution
// video: a contest kind plus number, and for Codeforces a division and an
// educational flag.
type Target struct {
	Kind        string
	Number      string
	Division    string
	Educational bool
}

// Matcher recognizes solution videos for one platform's contests.
// ExtractTarget derives the target from a contest title; when it reports
// false no match is attempted for that contest. Matches decides whether a
// candidate video title answers the target.
type Matcher interface {
	ExtractTarget(title string) (Target, bool)
	Matches(target Target, candidateTitle string) bool
}

// MatcherFor returns the matcher for a platform, or false when the
// platform has no title heuristic.
func MatcherFor(platform string) (Matcher, bool) {
	switch platform {
	case platforms.PlatformLeetCode:
		return leetcodeMatcher{}, true
	case platforms.PlatformCodeforces:
		return codeforcesMatcher{}, true
	case platforms.PlatformCodeChef:
		return codechefMatcher{}, true
	default:
		return nil, false
	}
}

type leetcodeMatcher struct{}

func (leetcodeMatcher) ExtractTarget(title string) (Target, bool) {
	m := leetcodeRe.FindStringSubmatch(cleanTitle(title))
	if m == nil {
		return Target{}, false
	}
	return Target{Kind: m[1], Number: m[2]}, true
}

func (leetcodeMatcher) Matches(target Target, candidateTitle string) bool {
	pattern := regexp.MustCompile(fmt.Sprintf(`\b%s\s+contest\s+%s\b`, target.Kind, target.Number))
	return pattern.MatchString(cleanTitle(candidateTitle))
}

type codeforcesMatcher struct{}

func (codeforcesMatcher) ExtractTarget(title string) (Target, bool) {
	cleaned := cleanTitle(title)
	m := codeforcesRe.FindStringSubmatch(cleaned)
	if m == nil {
		return Target{}, false
	}
	return Target{
		Kind:        "round",
		Number:      m[1],
		Division:    m[2],
		Educational: strings.Contains(cleaned, "educational"),
	}, true
}

func (codeforcesMatcher) Matches(target Target, candidateTitle string) bool {
	cleaned := cleanTitle(candidateTitle)
	if strings.Contains(cleaned, "educational") != target.Educational {
		return false
	}
	m := codeforcesRe.FindStringSubmatch(cleaned)
	if m == nil || m[1] != target.Number {
		return false
	}
	// A candidate that states no division is accepted; a candidate that
	// states a different one is not.
	return target.Division == "" || m[2] == "" || m[2] == target.Division
}

type codechefMatcher struct{}

func (codechefMatcher) ExtractTarget(title string) (Target, bool) {
	m := codechefRe.FindStringSubmatch(cleanTitle(title))
	if m == nil {
		return Target{}, false
	}
	return Target{Kind: m[1], Number: m[2]}, true
}

func (codechefMatcher) Matches(target Target, candidateTitle string) bool {
	pattern := regexp.MustCompile(fmt.Sprintf(`\b%s\s+%s\b`, target.Kind, target.Number))
	return pattern.MatchString(cleanTitle(candidateTitle))
}

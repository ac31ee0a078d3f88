package util

import (
	"strings"

	"boardfeed-engine/internal/domain"
)

// remoteSynonyms are location spellings that really mean "no fixed location".
var remoteSynonyms = []string{
	"anywhere",
	"talent network",
	"remote",
	"distributed",
	"virtual",
	"worldwide",
	"nationwide",
	"any location",
	"multiple locations",
	"add location",
}

// multiLocationDelims are checked in priority order; the first one found in
// the raw text wins.
var multiLocationDelims = []string{" or ", "/"}

func IsRemoteSynonym(s string) bool {
	low := strings.ToLower(s)
	for _, syn := range remoteSynonyms {
		if strings.Contains(low, syn) {
			return true
		}
	}
	return false
}

// NormalizeLocation applies the shared location rules to a raw single-string
// location. Empty result means unspecified/remote. Providers whose feeds use
// " and " between cities pass allowAnd.
func NormalizeLocation(raw string, allowAnd bool) string {
	raw = CleanText(raw)
	if raw == "" {
		return ""
	}

	if IsRemoteSynonym(raw) {
		return ""
	}

	delims := multiLocationDelims
	if allowAnd {
		delims = append([]string{" or ", "/"}, " and ")
	}
	low := strings.ToLower(raw)
	for _, d := range delims {
		if !strings.Contains(low, d) {
			continue
		}
		parts := strings.Split(raw, d)
		for i := range parts {
			parts[i] = TitleCase(CleanText(parts[i]))
		}
		return strings.Join(parts, ", ")
	}
	return raw
}

// ComposeLocation joins structured sub-fields in city → region → country
// order, skipping missing parts so there are no dangling separators.
func ComposeLocation(parts ...string) string {
	var present []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		present = append(present, p)
	}
	return strings.Join(present, ", ")
}

// IsRemote decides the remote flag for a normalized job. providerRemote is
// the feed's own remote/telecommute boolean where one exists.
func IsRemote(emp domain.Employer, location, title string, providerRemote bool) bool {
	return providerRemote ||
		emp.Remote ||
		location == "" ||
		ContainsFold(location, "remote") ||
		ContainsFold(title, "remote")
}

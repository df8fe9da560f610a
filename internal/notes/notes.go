// Package notes extracts per-slide control directives from speaker notes and
// strips them (plus block comments) out of the narration text.
package notes

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reComment  = regexp.MustCompile(`(?s)\{\*.*?\*\}`)
	reMinTime  = regexp.MustCompile(`\{\{min_time:(\d+)\}\}`)
	rePauseEnd = regexp.MustCompile(`\{\{pause_time_at_end:(\d+)\}\}`)
	reVoice    = regexp.MustCompile(`\{\{ai_voice:([A-Za-z0-9_.\-]+)\}\}`)
)

// Directives holds the timing and voice overrides parsed from one slide's notes.
// Nil pointer fields mean the directive was absent.
type Directives struct {
	MinTime   *int
	PauseTime *int
	Voice     string
}

// Parse returns the directives found in raw notes text and the narration text
// with comments and well-formed directive tokens removed. Malformed directive
// syntax is not matched and passes through untouched.
func Parse(raw string) (Directives, string) {
	var d Directives

	if strings.TrimSpace(raw) == "" {
		return d, ""
	}

	// Comments go first so directives inside comments are never honored.
	text := reComment.ReplaceAllString(raw, "")

	if m := reMinTime.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			d.MinTime = &v
		}
	}
	if m := rePauseEnd.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			d.PauseTime = &v
		}
	}
	if m := reVoice.FindStringSubmatch(text); m != nil {
		d.Voice = m[1]
	}

	text = reMinTime.ReplaceAllString(text, "")
	text = rePauseEnd.ReplaceAllString(text, "")
	text = reVoice.ReplaceAllString(text, "")

	// Collapse the whitespace holes left by removed tokens.
	return d, strings.Join(strings.Fields(text), " ")
}

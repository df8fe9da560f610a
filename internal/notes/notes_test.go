package notes

import "testing"

func TestParseDirectives(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantMin   int
		hasMin    bool
		wantPause int
		hasPause  bool
		wantVoice string
		wantText  string
	}{
		{
			name:     "no directives",
			raw:      "Welcome to the talk.",
			wantText: "Welcome to the talk.",
		},
		{
			name:     "min time",
			raw:      "Hello {{min_time:8}}",
			wantMin:  8,
			hasMin:   true,
			wantText: "Hello",
		},
		{
			name:      "pause time",
			raw:       "{{pause_time_at_end:2}}Closing remarks.",
			wantPause: 2,
			hasPause:  true,
			wantText:  "Closing remarks.",
		},
		{
			name:      "voice override",
			raw:       "Read this slowly. {{ai_voice:Puck}}",
			wantVoice: "Puck",
			wantText:  "Read this slowly.",
		},
		{
			name:      "all directives",
			raw:       "Intro {{min_time:5}} middle {{pause_time_at_end:1}} end {{ai_voice:Charon}}",
			wantMin:   5,
			hasMin:    true,
			wantPause: 1,
			hasPause:  true,
			wantVoice: "Charon",
			wantText:  "Intro middle end",
		},
		{
			name:     "first match wins",
			raw:      "{{min_time:3}} and {{min_time:9}}",
			wantMin:  3,
			hasMin:   true,
			wantText: "and",
		},
		{
			name:     "malformed directive passes through",
			raw:      "Hello {{min_time:abc}} world",
			wantText: "Hello {{min_time:abc}} world",
		},
		{
			name:     "unclosed directive passes through",
			raw:      "Hello {{min_time:4 world",
			wantText: "Hello {{min_time:4 world",
		},
		{
			name:     "empty input",
			raw:      "",
			wantText: "",
		},
		{
			name:     "whitespace only",
			raw:      "   \n\t  ",
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, text := Parse(tt.raw)

			if tt.hasMin {
				if d.MinTime == nil || *d.MinTime != tt.wantMin {
					t.Errorf("MinTime = %v, want %d", d.MinTime, tt.wantMin)
				}
			} else if d.MinTime != nil {
				t.Errorf("MinTime = %d, want absent", *d.MinTime)
			}

			if tt.hasPause {
				if d.PauseTime == nil || *d.PauseTime != tt.wantPause {
					t.Errorf("PauseTime = %v, want %d", d.PauseTime, tt.wantPause)
				}
			} else if d.PauseTime != nil {
				t.Errorf("PauseTime = %d, want absent", *d.PauseTime)
			}

			if d.Voice != tt.wantVoice {
				t.Errorf("Voice = %q, want %q", d.Voice, tt.wantVoice)
			}
			if text != tt.wantText {
				t.Errorf("cleaned text = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestParseComments(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
	}{
		{
			name:     "single line comment",
			raw:      "Before {*internal note*} after",
			wantText: "Before after",
		},
		{
			name:     "multi line comment",
			raw:      "Start {*line one\nline two\nline three*} end",
			wantText: "Start end",
		},
		{
			name:     "multiple comments",
			raw:      "{*a*}one{*b*}two{*c*}",
			wantText: "onetwo",
		},
		{
			name:     "directive inside comment is not honored",
			raw:      "Spoken text {*{{min_time:30}}*}",
			wantText: "Spoken text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, text := Parse(tt.raw)
			if text != tt.wantText {
				t.Errorf("cleaned text = %q, want %q", text, tt.wantText)
			}
			if tt.name == "directive inside comment is not honored" && d.MinTime != nil {
				t.Errorf("MinTime = %d, want absent", *d.MinTime)
			}
		})
	}
}

func TestParseDirectiveSyntaxNeverSurvives(t *testing.T) {
	inputs := []string{
		"a {{min_time:1}} b",
		"{{pause_time_at_end:10}}",
		"{{ai_voice:Kore}} hello {{min_time:2}}",
		"{{min_time:1}}{{min_time:2}}{{min_time:3}}",
	}

	for _, raw := range inputs {
		_, text := Parse(raw)
		if reMinTime.MatchString(text) || rePauseEnd.MatchString(text) || reVoice.MatchString(text) {
			t.Errorf("Parse(%q) left directive syntax in cleaned text %q", raw, text)
		}
	}
}

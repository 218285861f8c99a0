package tracklist

import (
	"regexp"
	"strconv"
	"strings"
)

// numberedPattern matches lines that carry their own track number before
// the title, with optional "-" or "|" separators:
//
//	01 - Intro - 00:00
//	#12 Song | 01:02:03
//	3 Outro 10:40
//
// Capture groups: 1 = track number, 3 = title, 5 = timestamp. The title is
// non-greedy, so it ends at the first separator-plus-timestamp that allows
// the whole pattern to match.
var numberedPattern = regexp.MustCompile(`#?(\d+)( [-|])? (.*?)( [-|])? ((\d{2}:?)+)`)

// timestampFirstPattern matches lines that lead with the timestamp and
// carry no track number:
//
//	00:00 - Intro
//	03:15 Main Theme
//
// Capture groups: 1 = timestamp, 4 = title.
var timestampFirstPattern = regexp.MustCompile(`((\d{2}:?)+)( [-|])? (.*?)$`)

// extraction holds the fields pulled out of one classified config line.
type extraction struct {
	number    int // valid only when hasNumber is true
	hasNumber bool
	title     string
	timestamp string
}

// grammarRule is one named line grammar. match reports whether the line
// conforms to the rule and returns the extracted fields if it does.
type grammarRule struct {
	name  string
	match func(line string) (extraction, bool)
}

// grammarRules lists the accepted line grammars in priority order.
// A line is classified by the first rule that matches it.
var grammarRules = []grammarRule{
	{name: "numbered", match: matchNumbered},
	{name: "timestampFirst", match: matchTimestampFirst},
}

// classifyLine tries each grammar rule in priority order and returns the
// first successful extraction. The line must already be stripped of
// surrounding whitespace and non-empty.
func classifyLine(line string) (extraction, bool) {
	for _, rule := range grammarRules {
		if ext, ok := rule.match(line); ok {
			return ext, true
		}
	}
	return extraction{}, false
}

func matchNumbered(line string) (extraction, bool) {
	m := numberedPattern.FindStringSubmatch(line)
	if m == nil {
		return extraction{}, false
	}

	number, err := strconv.Atoi(m[1])
	if err != nil {
		return extraction{}, false
	}

	return extraction{
		number:    number,
		hasNumber: true,
		title:     strings.TrimSpace(m[3]),
		timestamp: m[5],
	}, true
}

func matchTimestampFirst(line string) (extraction, bool) {
	m := timestampFirstPattern.FindStringSubmatch(line)
	if m == nil {
		return extraction{}, false
	}

	return extraction{
		title:     strings.TrimSpace(m[4]),
		timestamp: m[1],
	}, true
}

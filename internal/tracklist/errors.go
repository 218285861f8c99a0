package tracklist

import "fmt"

// LineError reports a config line that matches none of the accepted line
// grammars. Parsing stops at the first such line and no partial track list
// is returned.
type LineError struct {
	// Line is the 1-based line number within the config text.
	// Empty lines count toward the numbering.
	Line int

	// Text is the offending line, stripped of surrounding whitespace.
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("failed to parse config: line #%d - %s", e.Line, e.Text)
}

// TimestampError reports a timestamp string that cannot be converted to
// seconds: its colon-separated group count is outside 1 to 4, or one of
// the groups is not a non-negative integer.
type TimestampError struct {
	// Timestamp is the original timestamp text.
	Timestamp string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("unsupported timestamp format: %s", e.Timestamp)
}

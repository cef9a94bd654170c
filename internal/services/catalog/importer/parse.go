package importer

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const vimeoHost = "vimeo.com/"

var listDelimiters = []string{"\n", ", ", ",", " e ", " & "}

// CleanLink strips whitespace from a sheet link and drops one trailing
// non-digit from Vimeo links, which the sheet often carries as a stray
// slash or punctuation mark.
func CleanLink(raw string) string {
	cleaned := strings.NewReplacer(" ", "", "\n", "", "\r", "", "\t", "").Replace(raw)
	if strings.Contains(cleaned, vimeoHost) && cleaned != "" && !isDigit(cleaned[len(cleaned)-1]) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return cleaned
}

// VideoID extracts the Vimeo id from a cleaned link. The last path segment
// must be a positive integer.
func VideoID(link string) (int64, bool) {
	if !strings.Contains(link, vimeoHost) || link == "" || !isDigit(link[len(link)-1]) {
		return 0, false
	}
	segment := link[strings.LastIndex(link, "/")+1:]
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SeparateElements splits a sheet cell holding several names. Cells use
// newlines, commas, " e " and " & " interchangeably.
func SeparateElements(value string) []string {
	fragments := []string{value}
	for _, delimiter := range listDelimiters {
		next := make([]string, 0, len(fragments))
		for _, fragment := range fragments {
			next = append(next, strings.Split(fragment, delimiter)...)
		}
		fragments = next
	}
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ConcatStrings joins the non-blank values with ", " and turns embedded
// newlines into the same separator.
func ConcatStrings(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, value)
		}
	}
	return strings.ReplaceAll(strings.Join(parts, ", "), "\n", ", ")
}

// textSanitizer reduces sheet cells to plain text.
type textSanitizer struct {
	policy *bluemonday.Policy
}

func newTextSanitizer() textSanitizer {
	return textSanitizer{policy: bluemonday.StrictPolicy()}
}

// Text strips markup and returns unescaped plain text.
func (s textSanitizer) Text(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(value)))
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

package scraper

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/rs/zerolog"
)

// Extractor reads the job count out of a downloaded page. Everything that
// depends on the page structure lives behind this interface.
type Extractor interface {
	Extract(content []byte, target models.Target) (int, error)
}

// integerToken matches a decimal integer, optionally grouped in thousands
// ("1,234", "1.234", "1 234" with regular or non-breaking spaces).
var integerToken = regexp.MustCompile(`\d{1,3}(?:[,.\x{00A0}\x{202F} ]\d{3})+|\d+`)

// SelectorExtractor finds the count with a CSS selector and an optional
// regular expression applied to the matched text.
type SelectorExtractor struct {
	logger zerolog.Logger
}

func NewSelectorExtractor(logger zerolog.Logger) *SelectorExtractor {
	return &SelectorExtractor{logger: logger}
}

func (e *SelectorExtractor) Extract(content []byte, target models.Target) (int, error) {
	var pattern *regexp.Regexp
	if target.Pattern != "" {
		compiled, err := regexp.Compile(target.Pattern)
		if err != nil {
			return 0, &ExtractionError{Selector: target.Selector, Err: fmt.Errorf("%w: %v", ErrInvalidPattern, err)}
		}
		pattern = compiled
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return 0, &ExtractionError{Selector: target.Selector, Err: err}
	}

	nodes := doc.Find(target.Selector)
	if nodes.Length() == 0 {
		return 0, &ExtractionError{Selector: target.Selector, Err: ErrNoMatch}
	}

	var (
		counts   []int
		texts    []string
		lastText string
	)
	nodes.Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		lastText = text
		count, ok := countFromText(text, pattern)
		if !ok {
			return
		}
		if !slices.Contains(counts, count) {
			counts = append(counts, count)
			texts = append(texts, text)
		}
	})

	switch len(counts) {
	case 0:
		return 0, &ExtractionError{Selector: target.Selector, Text: lastText, Err: ErrNoInteger}
	case 1:
		e.logger.Debug().
			Str("selector", target.Selector).
			Str("text", texts[0]).
			Int("matches", nodes.Length()).
			Int("count", counts[0]).
			Msg("job count extracted")
		return counts[0], nil
	default:
		return 0, &ExtractionError{
			Selector: target.Selector,
			Text:     strings.Join(texts, " | "),
			Err:      fmt.Errorf("%w: %v", ErrAmbiguous, counts),
		}
	}
}

// countFromText returns the first integer in text, or in the pattern's
// first capture group (whole match when it has no groups).
func countFromText(text string, pattern *regexp.Regexp) (int, bool) {
	if pattern != nil {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			return 0, false
		}
		text = match[0]
		if len(match) > 1 {
			text = match[1]
		}
	}

	token := integerToken.FindString(text)
	if token == "" {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, token)

	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return count, true
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/Nydaym/mineru-extractor/internal/model"
)

// Keyword lists for sentiment scanning. The positive list is always scanned
// before the negative one, which fixes the keyword order in results.
var (
	positiveWords = []string{"好", "棒", "优秀", "满意", "喜欢", "推荐", "excellent", "good", "great", "awesome"}
	negativeWords = []string{"差", "坏", "糟糕", "失望", "不满", "讨厌", "bad", "terrible", "awful", "poor"}
)

var (
	companySuffixes = []string{"inc", "corp", "llc", "co", "ltd", "公司", "有限"}
	phoneKeywords   = []string{"tel", "电话", "phone"}
	currencyMarks   = []string{"¥", "$", "￥", "元", "USD", "CNY"}

	phonePattern = regexp.MustCompile(`[\d\-()+\s]+`)
)

// heuristicExtract dispatches on the record's extraction type. Unknown types
// yield no results. Every heuristic path produces at most one record.
func heuristicExtract(text string, proto model.Factory) []model.Record {
	lines := nonBlankLines(text)

	switch proto.ExtractionType() {
	case model.TypePerson:
		return heuristicPerson(lines)
	case model.TypeSentiment:
		return heuristicSentiment(text)
	case model.TypeCompany:
		return heuristicCompany(lines)
	case model.TypeProduct:
		return heuristicProduct(lines)
	case model.TypeContact:
		return heuristicContact(lines)
	default:
		return nil
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// stripMarkup removes leading '#' heading markers that MinerU emits in its
// markdown output.
func stripMarkup(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

func heuristicPerson(lines []string) []model.Record {
	if len(lines) == 0 {
		return nil
	}

	p := &model.Person{FullName: stripMarkup(lines[0])}
	if len(lines) >= 2 {
		p.JobTitle = stripMarkup(lines[1])
	}
	if len(lines) >= 3 {
		p.CompanyName = stripMarkup(lines[2])
	}
	return []model.Record{p}
}

func heuristicSentiment(text string) []model.Record {
	lower := strings.ToLower(text)

	positiveCount := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negativeCount++
		}
	}

	s := &model.Sentiment{}
	switch {
	case positiveCount > negativeCount:
		s.Sentiment = "positive"
		s.ConfidenceScore = math.Min(0.8, float64(positiveCount)*0.2)
	case negativeCount > positiveCount:
		s.Sentiment = "negative"
		s.ConfidenceScore = math.Min(0.8, float64(negativeCount)*0.2)
	default:
		s.Sentiment = "neutral"
		s.ConfidenceScore = 0.5
	}

	keywords := []string{}
	for _, w := range append(append([]string{}, positiveWords...), negativeWords...) {
		if len(keywords) == 5 {
			break
		}
		if strings.Contains(lower, w) {
			keywords = append(keywords, w)
		}
	}
	s.Keywords = keywords

	return []model.Record{s}
}

func heuristicCompany(lines []string) []model.Record {
	c := &model.CompanyInfo{}

	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, companySuffixes):
			// company name is reassigned on every matching line; the other
			// fields keep their first match
			c.CompanyName = line
		case containsAny(lower, phoneKeywords):
			if c.Phone == "" {
				if phone := strings.TrimSpace(phonePattern.FindString(line)); phone != "" {
					c.Phone = phone
				}
			}
		case strings.Contains(line, "@"):
			if c.Email == "" {
				c.Email = line
			}
		}
	}

	return []model.Record{c}
}

func heuristicProduct(lines []string) []model.Record {
	p := &model.ProductInfo{}

	for _, line := range lines {
		switch {
		case containsAny(line, currencyMarks):
			if p.Price == "" {
				p.Price = line
			}
		case p.ProductName == "" && len([]rune(line)) > 2:
			p.ProductName = line
		}
	}

	return []model.Record{p}
}

func heuristicContact(lines []string) []model.Record {
	c := &model.ContactInfo{}

	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(line, "@"):
			if c.Email == "" {
				c.Email = line
			}
		case containsAny(lower, phoneKeywords):
			if c.Phone == "" {
				if phone := strings.TrimSpace(phonePattern.FindString(line)); phone != "" {
					c.Phone = phone
				}
			}
		case c.Name == "" && len([]rune(line)) > 1:
			c.Name = line
		}
	}

	return []model.Record{c}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

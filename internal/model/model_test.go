package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletenessEmptyFieldList(t *testing.T) {
	assert.Equal(t, 0.0, Completeness())
}

func TestPersonConfidenceFull(t *testing.T) {
	p := &Person{FullName: "Jane Doe", JobTitle: "Senior Engineer", CompanyName: "Acme Corp"}
	p.UpdateConfidence()
	assert.InDelta(t, 1.0, p.Confidence, 1e-9)
}

func TestPersonConfidencePartial(t *testing.T) {
	p := &Person{FullName: "Jane Doe"}
	p.UpdateConfidence()
	assert.InDelta(t, 1.0/3.0, p.Confidence, 1e-9)
}

func TestPersonConfidenceBlankFields(t *testing.T) {
	p := &Person{FullName: "   ", JobTitle: "", CompanyName: "\t"}
	p.UpdateConfidence()
	assert.Equal(t, 0.0, p.Confidence, "whitespace-only fields are empty")
}

func TestConfidenceInRange(t *testing.T) {
	records := []Record{
		&Person{FullName: "A"},
		&Sentiment{Sentiment: "positive", ConfidenceScore: 0.8, Keywords: []string{"good"}},
		&CompanyInfo{CompanyName: "Acme Inc", Email: "x@acme.com"},
		&ProductInfo{ProductName: "Widget", Price: "$5"},
		&ContactInfo{Name: "Jane", Phone: "555-0100"},
		&MenuItem{DishName: "Mapo Tofu", Price: "¥28"},
	}
	for _, r := range records {
		c := r.CalculateConfidence()
		assert.GreaterOrEqual(t, c, 0.0, r.ExtractionType())
		assert.LessOrEqual(t, c, 1.0, r.ExtractionType())
	}
}

func TestSentimentConfidenceBlendsScore(t *testing.T) {
	s := &Sentiment{Sentiment: "positive", ConfidenceScore: 0.4, Keywords: []string{"good", "great"}}
	s.UpdateConfidence()
	// completeness 1.0 (all three fields filled), averaged with the score
	assert.InDelta(t, 0.7, s.Confidence, 1e-9)
}

func TestSentimentEmptyKeywordsStillCount(t *testing.T) {
	s := &Sentiment{Sentiment: "neutral", ConfidenceScore: 0.5, Keywords: []string{}}
	s.UpdateConfidence()
	// empty non-nil keyword slice counts as filled
	assert.InDelta(t, 0.75, s.Confidence, 1e-9)
}

func TestMenuItemBonus(t *testing.T) {
	m := &MenuItem{DishName: "Mapo Tofu", Price: "¥28"}
	m.UpdateConfidence()
	assert.InDelta(t, 0.6, m.Confidence, 1e-9, "2 of 5 fields plus the name+price bonus")
}

func TestMenuItemBonusCapped(t *testing.T) {
	m := &MenuItem{
		DishName:    "Mapo Tofu",
		Price:       "¥28",
		Description: "Silken tofu in chili bean sauce",
		Category:    "Sichuan",
		SpicyLevel:  "hot",
	}
	m.UpdateConfidence()
	assert.InDelta(t, 1.0, m.Confidence, 1e-9)
}

func TestExtractionTypesStable(t *testing.T) {
	cases := map[Record]string{
		&Person{}:      "person",
		&Sentiment{}:   "sentiment",
		&CompanyInfo{}: "company_info",
		&ProductInfo{}: "product_info",
		&ContactInfo{}: "contact_info",
		&MenuItem{}:    "menu_info",
	}
	for r, want := range cases {
		assert.Equal(t, want, r.ExtractionType())
		assert.NotEmpty(t, r.TypeDescription(), want)
	}
}

package model

const TypeSentiment = "sentiment"

// Sentiment holds the overall sentiment of the text together with the
// analysis's own certainty and the keywords that drove the call.
type Sentiment struct {
	Sentiment       string   `json:"sentiment,omitempty"` // positive/negative/neutral
	ConfidenceScore float64  `json:"confidence_score"`
	Keywords        []string `json:"keywords,omitempty"`
	Confidence      float64  `json:"confidence"`
}

func (s *Sentiment) ExtractionType() string { return TypeSentiment }

func (s *Sentiment) TypeDescription() string {
	return "Sentiment analysis (polarity, score, keywords)"
}

func (s *Sentiment) New() Record { return &Sentiment{} }

// CalculateConfidence blends field completeness with the analysis's
// self-reported score rather than using completeness alone.
func (s *Sentiment) CalculateConfidence() float64 {
	base := Completeness(s.Sentiment, s.ConfidenceScore, s.Keywords)
	return (base + s.ConfidenceScore) / 2
}

func (s *Sentiment) UpdateConfidence() { s.Confidence = s.CalculateConfidence() }

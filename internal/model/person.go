package model

const TypePerson = "person"

// Person holds details about one person found in the image, typically from
// a business card, profile screenshot or group photo.
type Person struct {
	FullName    string  `json:"full_name,omitempty"`
	JobTitle    string  `json:"job_title,omitempty"`
	CompanyName string  `json:"company_name,omitempty"`
	Confidence  float64 `json:"confidence"`
}

func (p *Person) ExtractionType() string { return TypePerson }

func (p *Person) TypeDescription() string {
	return "Person details (name, job title, company)"
}

func (p *Person) New() Record { return &Person{} }

func (p *Person) CalculateConfidence() float64 {
	return Completeness(p.FullName, p.JobTitle, p.CompanyName)
}

func (p *Person) UpdateConfidence() { p.Confidence = p.CalculateConfidence() }

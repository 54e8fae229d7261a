package model

const TypeCompany = "company_info"

// CompanyInfo holds company details found in the image.
type CompanyInfo struct {
	CompanyName string  `json:"company_name,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
	Confidence  float64 `json:"confidence"`
}

func (c *CompanyInfo) ExtractionType() string { return TypeCompany }

func (c *CompanyInfo) TypeDescription() string {
	return "Company details (name, industry, contact info)"
}

func (c *CompanyInfo) New() Record { return &CompanyInfo{} }

func (c *CompanyInfo) CalculateConfidence() float64 {
	return Completeness(c.CompanyName, c.Industry, c.Address, c.Phone, c.Email)
}

func (c *CompanyInfo) UpdateConfidence() { c.Confidence = c.CalculateConfidence() }

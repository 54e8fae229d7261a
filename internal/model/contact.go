package model

const TypeContact = "contact_info"

// ContactInfo holds contact details found in the image.
type ContactInfo struct {
	Name       string  `json:"name,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty"`
	Address    string  `json:"address,omitempty"`
	WeChat     string  `json:"wechat,omitempty"`
	Confidence float64 `json:"confidence"`
}

func (c *ContactInfo) ExtractionType() string { return TypeContact }

func (c *ContactInfo) TypeDescription() string {
	return "Contact details (name, phone, email, address)"
}

func (c *ContactInfo) New() Record { return &ContactInfo{} }

func (c *ContactInfo) CalculateConfidence() float64 {
	return Completeness(c.Name, c.Phone, c.Email, c.Address, c.WeChat)
}

func (c *ContactInfo) UpdateConfidence() { c.Confidence = c.CalculateConfidence() }

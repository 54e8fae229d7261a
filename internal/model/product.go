package model

const TypeProduct = "product_info"

// ProductInfo holds product details found in the image.
type ProductInfo struct {
	ProductName string  `json:"product_name,omitempty"`
	Price       string  `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
	Confidence  float64 `json:"confidence"`
}

func (p *ProductInfo) ExtractionType() string { return TypeProduct }

func (p *ProductInfo) TypeDescription() string {
	return "Product details (name, price, brand, description)"
}

func (p *ProductInfo) New() Record { return &ProductInfo{} }

func (p *ProductInfo) CalculateConfidence() float64 {
	return Completeness(p.ProductName, p.Price, p.Description, p.Brand, p.Category)
}

func (p *ProductInfo) UpdateConfidence() { p.Confidence = p.CalculateConfidence() }

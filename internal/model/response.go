package model

// Response is the JSON body returned by the extraction endpoints.
type Response struct {
	Success        bool     `json:"success"`
	Data           []Record `json:"data"`
	ExtractionType string   `json:"extraction_type"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	OCRText        string   `json:"ocr_text,omitempty"`
}

// TypeInfo describes one registered extraction type for discovery responses.
type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

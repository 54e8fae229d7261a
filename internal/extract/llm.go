package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/llm"
	"github.com/Nydaym/mineru-extractor/internal/metrics"
	"github.com/Nydaym/mineru-extractor/internal/model"
)

// systemPrompts holds the extraction instructions per built-in type. A type
// without an entry is not claimed by this extractor; custom types bring
// their own extractor instead of running an unconstrained model call.
var systemPrompts = map[string]string{
	model.TypePerson: "You are an expert at extracting person details from OCR text. " +
		"The input usually comes from business cards, profile screenshots or group photos and may mention one or more people. " +
		"Follow these rules strictly: " +
		"1. Extract every person found in the text, even when there are several. " +
		"2. The name is usually the most prominent text, often on the first line. " +
		"3. Job titles include keywords such as Director, Manager, Engineer, Analyst. " +
		"4. Company names often carry suffixes like Inc, Corp, LLC, Co. " +
		"5. Omit a field when it cannot be determined. " +
		"6. Extract only explicit information, never guess. " +
		"7. Return the full list of people found, even if there is only one.",

	model.TypeSentiment: "You are an expert sentiment analyst working on OCR text. " +
		"Follow these rules strictly: " +
		"1. Classify the overall sentiment as positive, negative or neutral. " +
		"2. Report a confidence_score between 0 and 1 for the reliability of the call. " +
		"3. Extract the keywords that drove the judgement. " +
		"4. Lower the score when the text is very short or ambiguous. " +
		"5. Only analyze explicit sentiment, never over-interpret.",

	model.TypeCompany: "You are an expert at extracting company details from OCR text. " +
		"Follow these rules strictly: " +
		"1. Extract the company name, industry, address, phone and email. " +
		"2. Company names often carry suffixes like Inc, Corp, LLC, Co, Ltd. " +
		"3. Addresses should be complete, including street, city and postal code. " +
		"4. Phone numbers come in many formats; keep the original formatting. " +
		"5. Omit a field when it cannot be determined. " +
		"6. Extract only explicit information, never guess.",

	model.TypeProduct: "You are an expert at extracting product details from OCR text. " +
		"Follow these rules strictly: " +
		"1. Extract the product name, price, description, brand and category. " +
		"2. Prices include the currency symbol and amount. " +
		"3. Keep descriptions short and factual. " +
		"4. Brand names are usually prominent. " +
		"5. Categories cover product type and intended use. " +
		"6. Omit a field when it cannot be determined. " +
		"7. Extract only explicit information, never guess.",

	model.TypeContact: "You are an expert at extracting contact details from OCR text. " +
		"Follow these rules strictly: " +
		"1. Extract the name, phone, email, address and WeChat handle. " +
		"2. Phone numbers come in many formats; keep the original formatting. " +
		"3. Email addresses must contain an @ sign. " +
		"4. Addresses should be as complete as possible. " +
		"5. WeChat handles usually start with a letter. " +
		"6. Omit a field when it cannot be determined. " +
		"7. Extract only explicit information, never guess.",
}

// LLMExtractor extracts records through an OpenAI-compatible structured
// output call, degrading to deterministic line heuristics when no client is
// configured.
type LLMExtractor struct {
	client *llm.Client
	logger *zap.Logger
}

// NewLLMExtractor creates the extractor. A nil client selects the heuristic
// fallback path; this is a policy choice, degraded accuracy beats a hard
// failure when no model is reachable.
func NewLLMExtractor(client *llm.Client, logger *zap.Logger) *LLMExtractor {
	if client == nil {
		logger.Warn("no LLM API key configured, falling back to heuristic extraction")
	}
	return &LLMExtractor{client: client, logger: logger}
}

// Supports reports whether a system instruction exists for the record type.
func (e *LLMExtractor) Supports(proto model.Factory) bool {
	_, ok := systemPrompts[proto.ExtractionType()]
	return ok
}

// Extract returns populated records with confidence computed. Failures are
// logged and produce an empty result, never an error.
func (e *LLMExtractor) Extract(ctx context.Context, text string, proto model.Factory) []model.Record {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var records []model.Record
	if e.client != nil {
		records = e.extractWithModel(ctx, text, proto)
	} else {
		metrics.RecordHeuristicFallback()
		records = heuristicExtract(text, proto)
	}

	for _, r := range records {
		r.UpdateConfidence()
	}
	return records
}

// itemsEnvelope wraps the target record in a list shape so that a single
// model call can return multiple matches (e.g. several people on one group
// photo) even though most record types describe a single entity.
type itemsEnvelope struct {
	Items []json.RawMessage `json:"items"`
}

func (e *LLMExtractor) extractWithModel(ctx context.Context, text string, proto model.Factory) []model.Record {
	metrics.RecordLLMCall()

	system := systemPrompts[proto.ExtractionType()]
	user := buildUserPrompt(text, proto)

	content, err := e.client.CompleteJSON(ctx, system, user)
	if err != nil {
		e.logger.Warn("llm extraction failed",
			zap.String("extraction_type", proto.ExtractionType()),
			zap.Error(err),
		)
		return nil
	}

	var envelope itemsEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		e.logger.Warn("llm returned malformed envelope",
			zap.String("extraction_type", proto.ExtractionType()),
			zap.Error(err),
		)
		return nil
	}

	var records []model.Record
	for _, raw := range envelope.Items {
		rec := proto.New()
		if err := json.Unmarshal(raw, rec); err != nil {
			e.logger.Warn("skipping item that does not match the record shape",
				zap.String("extraction_type", proto.ExtractionType()),
				zap.Error(err),
			)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func buildUserPrompt(text string, proto model.Factory) string {
	var b strings.Builder
	b.WriteString("Extract information from the following OCR text:\n\n")
	b.WriteString(text)
	b.WriteString("\n\nReturn ONLY a JSON object of the form {\"items\": [...]} where every item has ")
	b.WriteString("exactly these fields: ")
	b.WriteString(strings.Join(jsonFields(proto.New()), ", "))
	b.WriteString(". Use an empty list when nothing can be extracted.")
	return b.String()
}

// jsonFields lists the JSON keys of a record so the prompt can pin down the
// item shape for any registered type, plugins included.
func jsonFields(rec model.Record) []string {
	t := reflect.TypeOf(rec)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "confidence" {
			continue
		}
		fields = append(fields, fmt.Sprintf("%q", name))
	}
	return fields
}

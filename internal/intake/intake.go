// Package intake validates raw quiz payloads against the attempt record
// schema before they reach the analysis engine.
package intake

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
)

// maxDetails caps how many schema violations are reported back.
const maxDetails = 10

const attemptSchema = `{
	"type": "object",
	"required": ["subject", "isCorrect"],
	"properties": {
		"subject":    {"type": "string", "minLength": 1},
		"isCorrect":  {"type": "boolean"},
		"questionId": {"type": ["string", "integer"]}
	}
}`

var (
	attemptsValidator = mustSchema(fmt.Sprintf(`{"type": "array", "items": %s}`, attemptSchema))
	attemptValidator  = mustSchema(attemptSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("intake: compiling schema: %v", err))
	}
	return s
}

type attemptPayload struct {
	Subject    string          `json:"subject"`
	IsCorrect  bool            `json:"isCorrect"`
	QuestionID json.RawMessage `json:"questionId"`
}

func (p attemptPayload) record() analysis.AttemptRecord {
	return analysis.AttemptRecord{
		Subject:    analysis.Subject(p.Subject),
		IsCorrect:  p.IsCorrect,
		QuestionID: questionID(p.QuestionID),
	}
}

// ParseAttempts validates body as a JSON array of attempt records and decodes
// it. Subject names are passed through unresolved; the aggregator rejects
// unknown ones.
func ParseAttempts(body []byte) ([]analysis.AttemptRecord, error) {
	if err := check(attemptsValidator, body, "attempts"); err != nil {
		return nil, err
	}

	var payload []attemptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &analysis.ValidationError{Message: "malformed attempts", Details: []string{err.Error()}}
	}

	out := make([]analysis.AttemptRecord, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.record())
	}
	return out, nil
}

// ParseAttempt validates and decodes a single attempt object.
func ParseAttempt(body []byte) (analysis.AttemptRecord, error) {
	if err := check(attemptValidator, body, "attempt"); err != nil {
		return analysis.AttemptRecord{}, err
	}

	var p attemptPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return analysis.AttemptRecord{}, &analysis.ValidationError{Message: "malformed attempt", Details: []string{err.Error()}}
	}
	return p.record(), nil
}

func check(schema *gojsonschema.Schema, body []byte, what string) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &analysis.ValidationError{Message: "request body is empty"}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &analysis.ValidationError{Message: "malformed JSON", Details: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		if len(details) == maxDetails {
			details = append(details, fmt.Sprintf("and %d more", len(result.Errors())-maxDetails))
			break
		}
		details = append(details, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}
	return &analysis.ValidationError{
		Message: fmt.Sprintf("invalid %s payload", what),
		Details: details,
	}
}

func questionID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

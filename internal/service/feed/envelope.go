package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"SentimentDash/internal/domain/models"
)

// ParseEnvelope extracts the data array from a feed response body. A missing
// or non-array data field is ErrMalformedResponse.
func ParseEnvelope(body []byte) ([]json.RawMessage, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, models.ErrMalformedResponse
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// DecodeRecords decodes raw feed items into typed records.
func DecodeRecords(items []json.RawMessage) ([]models.PredictionRecord, error) {
	out := make([]models.PredictionRecord, len(items))
	for i, it := range items {
		if err := json.Unmarshal(it, &out[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", models.ErrMalformedResponse, i, err)
		}
	}
	return out, nil
}

// ErrorBody extracts the message of an {"error": "..."} body, falling back to
// the raw text.
func ErrorBody(body string) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &e); err == nil && e.Error != "" {
		return e.Error
	}
	return body
}

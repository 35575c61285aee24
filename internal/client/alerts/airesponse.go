package alerts

import (
	"bytes"
	"encoding/json"
	"strings"
)

// AIResponse is the structured assistant payload attached to an alert.
type AIResponse struct {
	Summary         string   `json:"summary"`
	Details         string   `json:"details"`
	Recommendations []string `json:"recommendations"`
}

// stringList accepts a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "" {
			*l = []string{s}
		}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*l = arr
	return nil
}

type aiPayload struct {
	Summary         string     `json:"summary"`
	Details         string     `json:"details"`
	Recommendations stringList `json:"recommendations"`
}

// DecodeAIResponse always returns the structured form. A JSON object is
// decoded directly, a JSON string is decoded again as an object, and any
// text that does not decode becomes Details.
func DecodeAIResponse(raw json.RawMessage) AIResponse {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return AIResponse{}
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return AIResponse{Details: string(b)}
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "{") {
			if r, ok := decodeObject([]byte(s)); ok {
				return r
			}
		}
		return AIResponse{Details: s}
	}

	if b[0] == '{' {
		if r, ok := decodeObject(b); ok {
			return r
		}
	}
	return AIResponse{Details: string(b)}
}

func decodeObject(b []byte) (AIResponse, bool) {
	var p aiPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return AIResponse{}, false
	}
	recs := []string(p.Recommendations)
	if recs == nil {
		recs = []string{}
	}
	return AIResponse{Summary: p.Summary, Details: p.Details, Recommendations: recs}, true
}

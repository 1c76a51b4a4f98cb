package evaluation

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// SampleResult is one unit of work drawn from a numbered range and scored
// independently. Score and IsClean are derived from Errors and kept in sync
// by the scoring package.
type SampleResult struct {
	SampleID string   `json:"sample_id"`
	Errors   []string `json:"errors"`
	IsClean  bool     `json:"is_clean"`
	Score    int      `json:"score"`
}

func EncodeSamples(samples []SampleResult) datatypes.JSON {
	if samples == nil {
		samples = []SampleResult{}
	}
	raw, err := json.Marshal(samples)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func DecodeSamples(raw datatypes.JSON) []SampleResult {
	if len(raw) == 0 {
		return nil
	}
	var samples []SampleResult
	if err := json.Unmarshal(raw, &samples); err != nil {
		return nil
	}
	return samples
}

func EncodeLabels(labels []string) datatypes.JSON {
	if labels == nil {
		labels = []string{}
	}
	raw, err := json.Marshal(labels)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func DecodeLabels(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil
	}
	return labels
}

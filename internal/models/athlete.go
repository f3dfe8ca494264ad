package models

import (
	"encoding/json"
	"fmt"
)

// Meet is a single competition as reported by the athlete bio endpoint
type Meet struct {
	ID      int    `json:"IDMeet"`
	Name    string `json:"MeetName"`
	EndDate string `json:"EndDate"`
}

// RaceResult is one mark recorded for the athlete
type RaceResult struct {
	EventID int    `json:"EventID"`
	MeetID  int    `json:"MeetID"`
	Result  string `json:"Result"`
}

// Document is the subset of the athlete bio payload used for reporting
type Document struct {
	Meets   map[string]Meet `json:"meets"`
	Results []RaceResult    `json:"resultsTF"`
}

// rawDocument keeps pointers so absent fields can be told apart from empty ones
type rawDocument struct {
	Meets   *map[string]Meet `json:"meets"`
	Results *[]RaceResult    `json:"resultsTF"`
}

// DecodeDocument parses an athlete bio payload.
// A payload without "meets" or "resultsTF" is rejected with a MissingDataError.
func DecodeDocument(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode athlete document: %w", err)
	}

	if raw.Meets == nil {
		return nil, &MissingDataError{Field: "meets"}
	}
	if raw.Results == nil {
		return nil, &MissingDataError{Field: "resultsTF"}
	}

	return &Document{
		Meets:   *raw.Meets,
		Results: *raw.Results,
	}, nil
}

// AssociatedResult pairs a raw race time with the display key of its meet
type AssociatedResult struct {
	Result string `json:"result"`
	Key    string `json:"key"`
}

// String renders the pair the way reports list it
func (a AssociatedResult) String() string {
	return fmt.Sprintf("%s: %s", a.Key, a.Result)
}

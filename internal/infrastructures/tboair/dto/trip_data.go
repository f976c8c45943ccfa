package dto

import (
	"bytes"
	"encoding/json"
)

type Airport struct {
	AirportCode string `json:"AirportCode"`
	AirportName string `json:"AirportName"`
	CityName    string `json:"CityName"`
	Terminal    string `json:"Terminal"`
	CountryName string `json:"CountryName"`
}

type Airline struct {
	AirlineCode  string `json:"AirlineCode"`
	AirlineName  string `json:"AirlineName"`
	FlightNumber string `json:"FlightNumber"`
	Craft        string `json:"Craft"`
}

type RawSegment struct {
	Origin      Airport `json:"Origin"`
	Destination Airport `json:"Destination"`
	Airline     Airline `json:"Airline"`
	DepTime     string  `json:"DepTime"`
	ArrTime     string  `json:"ArrTime"`
	Duration    int     `json:"Duration"`
	CabinClass  string  `json:"CabinClass"`
	Baggage     string  `json:"Baggage"`
}

type FareClassification struct {
	Type string `json:"Type"`
}

type Fare struct {
	PublishedFare      float64            `json:"PublishedFare"`
	BaseFare           float64            `json:"BaseFare"`
	Tax                float64            `json:"Tax"`
	Baggage            string             `json:"Baggage"`
	FareClassification FareClassification `json:"FareClassification"`
	IsRefundable       bool               `json:"IsRefundable"`
}

// SegmentGroups is the wire-shape of the provider's "Segments" field,
// which arrives either as a flat segment array (one journey) or as an
// array of segment arrays (one per journey). The ambiguity is resolved
// here, once, so downstream code only ever sees grouped segments.
type SegmentGroups [][]RawSegment

func (g *SegmentGroups) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*g = nil
		return nil
	}

	var grouped [][]RawSegment
	if err := json.Unmarshal(trimmed, &grouped); err == nil {
		*g = grouped
		return nil
	}

	var flat []RawSegment
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return err
	}
	if len(flat) == 0 {
		*g = nil
		return nil
	}
	*g = SegmentGroups{flat}
	return nil
}

type SSROption struct {
	Code        string  `json:"Code"`
	Description string  `json:"Description"`
	Price       float64 `json:"Price"`
	Origin      string  `json:"Origin"`
	Destination string  `json:"Destination"`
}

// SSRGroups accepts the same flat-or-nested duality as SegmentGroups:
// ancillary lists may arrive flat or nested one level per segment.
type SSRGroups [][]SSROption

func (g *SSRGroups) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*g = nil
		return nil
	}

	var grouped [][]SSROption
	if err := json.Unmarshal(trimmed, &grouped); err == nil {
		*g = grouped
		return nil
	}

	var flat []SSROption
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return err
	}
	if len(flat) == 0 {
		*g = nil
		return nil
	}
	*g = SSRGroups{flat}
	return nil
}

type FlightResult struct {
	Segments SegmentGroups `json:"Segments"`
	Fare     Fare          `json:"Fare"`
	Fares    []Fare        `json:"Fares"`
	Meals    SSRGroups     `json:"MealDynamic"`
	Baggages SSRGroups     `json:"BaggageDynamic"`
	Seats    SSRGroups     `json:"SeatDynamic"`
}

type RoundTripPayload struct {
	Onward *FlightResult `json:"onward"`
	Return *FlightResult `json:"return"`
}

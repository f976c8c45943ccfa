package models

import "fmt"

type SeatChoice struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
}

type MealChoice struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
}

type BaggageChoice struct {
	Code  string  `json:"code"`
	Price float64 `json:"price"`
}

// AncillarySelection holds the traveller's choices for one segment.
// At most one baggage option applies per segment; the meal list is
// capped at the traveller count when the fare is computed.
type AncillarySelection struct {
	Seats   []SeatChoice   `json:"seats,omitempty"`
	Meals   []MealChoice   `json:"meals,omitempty"`
	Baggage *BaggageChoice `json:"baggage,omitempty"`
}

// SelectionSet maps "{journeyKind}|{segmentIndex}" to the choices made
// for that segment.
type SelectionSet map[string]AncillarySelection

func SelectionKey(journeyKind string, segmentIndex int) string {
	return fmt.Sprintf("%s|%d", journeyKind, segmentIndex)
}

type FareSummary struct {
	BaseFare     float64 `json:"base_fare"`
	Tax          float64 `json:"tax"`
	SeatTotal    float64 `json:"seat_total"`
	MealTotal    float64 `json:"meal_total"`
	BaggageTotal float64 `json:"baggage_total"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// ComputeFareSummary derives the payable fare from the parsed trip and
// the accumulated selections. Pure; meant to be recomputed on every
// selection change. The total never drops below zero.
func ComputeFareSummary(trip *ParsedTrip, set SelectionSet, travellers int, discount float64) FareSummary {
	if travellers <= 0 {
		travellers = 1
	}

	var summary FareSummary
	if trip != nil {
		for _, journey := range trip.Journeys {
			summary.BaseFare += journey.BaseFare
			summary.Tax += journey.Tax
		}
	}

	for _, sel := range set {
		for _, seat := range sel.Seats {
			summary.SeatTotal += seat.Price
		}
		meals := sel.Meals
		if len(meals) > travellers {
			meals = meals[:travellers]
		}
		for _, meal := range meals {
			summary.MealTotal += meal.Price
		}
		if sel.Baggage != nil {
			summary.BaggageTotal += sel.Baggage.Price * float64(travellers)
		}
	}

	summary.Discount = discount
	total := summary.BaseFare + summary.Tax + summary.SeatTotal + summary.MealTotal + summary.BaggageTotal - discount
	if total < 0 {
		total = 0
	}
	summary.Total = total
	return summary
}

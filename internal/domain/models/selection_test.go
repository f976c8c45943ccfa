package models

import "testing"

func sampleTrip() *ParsedTrip {
	return &ParsedTrip{
		Type: TripOneWay,
		Journeys: []Journey{
			{Kind: JourneyOnward, BaseFare: 4000, Tax: 600},
		},
		TotalPrice: 4600,
	}
}

func TestComputeFareSummary_SumsAllComponents(t *testing.T) {
	set := SelectionSet{
		SelectionKey(JourneyOnward, 0): {
			Seats:   []SeatChoice{{Code: "12A", Price: 250}, {Code: "12B", Price: 250}},
			Meals:   []MealChoice{{Code: "VGML", Price: 350}},
			Baggage: &BaggageChoice{Code: "XBAG", Price: 1000},
		},
	}

	summary := ComputeFareSummary(sampleTrip(), set, 2, 100)
	if summary.SeatTotal != 500 {
		t.Fatalf("seat total = %v, want 500", summary.SeatTotal)
	}
	if summary.MealTotal != 350 {
		t.Fatalf("meal total = %v, want 350", summary.MealTotal)
	}
	if summary.BaggageTotal != 2000 {
		t.Fatalf("baggage total = %v, want price x travellers = 2000", summary.BaggageTotal)
	}
	want := 4000.0 + 600 + 500 + 350 + 2000 - 100
	if summary.Total != want {
		t.Fatalf("total = %v, want %v", summary.Total, want)
	}
}

func TestComputeFareSummary_CapsMealsAtTravellerCount(t *testing.T) {
	set := SelectionSet{
		SelectionKey(JourneyOnward, 0): {
			Meals: []MealChoice{
				{Code: "VGML", Price: 300},
				{Code: "AVML", Price: 300},
				{Code: "FPML", Price: 300},
			},
		},
	}

	summary := ComputeFareSummary(sampleTrip(), set, 2, 0)
	if summary.MealTotal != 600 {
		t.Fatalf("meal total = %v, want capped 600", summary.MealTotal)
	}
}

func TestComputeFareSummary_FloorsAtZero(t *testing.T) {
	summary := ComputeFareSummary(sampleTrip(), nil, 1, 99999)
	if summary.Total != 0 {
		t.Fatalf("total = %v, want floored 0", summary.Total)
	}
}

func TestComputeFareSummary_NilTripAndZeroTravellers(t *testing.T) {
	set := SelectionSet{
		SelectionKey(JourneyReturn, 1): {
			Baggage: &BaggageChoice{Code: "XBAG", Price: 500},
		},
	}

	summary := ComputeFareSummary(nil, set, 0, 0)
	if summary.BaggageTotal != 500 {
		t.Fatalf("baggage total = %v, want 500 with travellers defaulted to 1", summary.BaggageTotal)
	}
	if summary.BaseFare != 0 || summary.Tax != 0 {
		t.Fatalf("nil trip must contribute nothing: %+v", summary)
	}
}

func TestSelectionKey(t *testing.T) {
	if got := SelectionKey(JourneyReturn, 2); got != "return|2" {
		t.Fatalf("key = %q, want return|2", got)
	}
}

package models

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
	TripMultiCity TripType = "multi-city"
)

const (
	JourneyOnward = "onward"
	JourneyReturn = "return"
)

type AirportInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Terminal string `json:"terminal,omitempty"`
	Country  string `json:"country,omitempty"`
}

type CarrierInfo struct {
	AirlineCode  string `json:"airline_code"`
	AirlineName  string `json:"airline_name"`
	FlightNumber string `json:"flight_number"`
	Equipment    string `json:"equipment,omitempty"`
}

// Segment is the per-leg projection handed to the view layer.
// LayoverTime is minutes until the next segment departs, always 0 for
// the last segment of a journey and never negative.
type Segment struct {
	Origin      AirportInfo `json:"origin"`
	Destination AirportInfo `json:"destination"`
	Carrier     CarrierInfo `json:"carrier"`
	DepartureAt string      `json:"departure_at"`
	ArrivalAt   string      `json:"arrival_at"`
	Duration    int         `json:"duration"`
	LayoverTime int         `json:"layover_time"`
	CabinClass  string      `json:"cabin_class,omitempty"`
}

// Journey is one direction of travel. Duration is the sum of the
// provider-declared per-segment durations; TotalMinutes is the
// wall-clock span from first departure to last arrival. The two may
// diverge when the raw timestamps are unreliable.
type Journey struct {
	Kind          string    `json:"kind"`
	Segments      []Segment `json:"segments"`
	Stops         int       `json:"stops"`
	Duration      int       `json:"duration"`
	TotalMinutes  int       `json:"total_minutes"`
	PublishedFare float64   `json:"published_fare"`
	BasePrice     int64     `json:"base_price"`
	BaseFare      float64   `json:"base_fare"`
	Tax           float64   `json:"tax"`
	FareClass     string    `json:"fare_class"`
	Refundable    bool      `json:"refundable"`
	Baggage       string    `json:"baggage,omitempty"`
}

type ParsedTrip struct {
	Type        TripType         `json:"type"`
	Journeys    []Journey        `json:"journeys"`
	TotalPrice  float64          `json:"total_price"`
	Refundable  bool             `json:"refundable"`
	Ancillaries AncillaryCatalog `json:"ancillaries"`
}

// AncillaryCatalog lists the selectable extras for the trip, already
// flattened and deduplicated.
type AncillaryCatalog struct {
	Meals    []SSROption `json:"meals,omitempty"`
	Baggages []SSROption `json:"baggages,omitempty"`
	Seats    []SSROption `json:"seats,omitempty"`
}

// SSROption is one selectable ancillary (meal, baggage or seat) after
// normalization: sentinels removed, duplicates by code collapsed.
type SSROption struct {
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Origin      string  `json:"origin,omitempty"`
	Destination string  `json:"destination,omitempty"`
}

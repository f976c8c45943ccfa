package mappers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/domain/models"
	"github.com/DDPL-Work/Online-Corporate-Travel-Desk--sub000/internal/infrastructures/tboair/dto"
)

// DefaultFareClass is applied when the provider omits the fare
// classification.
const DefaultFareClass = "ECONOMY"

// noSelectionCodes are the provider's "nothing chosen" sentinel entries
// that must never surface as selectable options.
var noSelectionCodes = map[string]struct{}{
	"NoMeal":    {},
	"NoBaggage": {},
	"NoSeat":    {},
}

// ParseTrip is the boundary entry point for raw provider payloads. The
// trip topology is detected exactly once: an {onward,return} object is
// a round trip, a single result with several segment groups is a
// multi-city itinerary, anything else is one-way. Insufficient
// structure yields nil, never an error.
func ParseTrip(data []byte) *models.ParsedTrip {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var probe struct {
		Onward json.RawMessage `json:"onward"`
		Return json.RawMessage `json:"return"`
	}
	if err := json.Unmarshal(trimmed, &probe); err == nil && (probe.Onward != nil || probe.Return != nil) {
		var payload dto.RoundTripPayload
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil
		}
		return ParseRoundTrip(&payload)
	}

	var result dto.FlightResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil
	}
	if len(result.Segments) > 1 {
		return ParseMultiCity(&result)
	}
	return ParseOneWay(&result)
}

// ParseOneWay maps a single-journey result. Returns nil when the result
// carries no segments, or when it carries more than one segment group;
// a multi-group itinerary must go through ParseMultiCity so no journey
// is silently dropped.
func ParseOneWay(result *dto.FlightResult) *models.ParsedTrip {
	if result == nil || len(result.Segments) != 1 || len(result.Segments[0]) == 0 {
		return nil
	}

	journey := buildJourney(models.JourneyOnward, result.Segments[0], result.Fare)
	return &models.ParsedTrip{
		Type:        models.TripOneWay,
		Journeys:    []models.Journey{journey},
		TotalPrice:  float64(journey.BasePrice),
		Refundable:  journey.Refundable,
		Ancillaries: buildCatalog(result),
	}
}

// ParseRoundTrip maps an onward/return pair. Both legs must be present;
// a partial round trip is not a trip. The combined price sums the raw
// published fares before any rounding, while each leg's own BasePrice
// is rounded individually. Upstream behaves this way and displays the
// combined figure without fractional currency, so the divergence is
// kept.
func ParseRoundTrip(payload *dto.RoundTripPayload) *models.ParsedTrip {
	if payload == nil || payload.Onward == nil || payload.Return == nil {
		return nil
	}

	onward := ParseOneWay(payload.Onward)
	back := ParseOneWay(payload.Return)
	if onward == nil || back == nil {
		return nil
	}

	outJourney := onward.Journeys[0]
	outJourney.Kind = models.JourneyOnward
	retJourney := back.Journeys[0]
	retJourney.Kind = models.JourneyReturn

	return &models.ParsedTrip{
		Type:        models.TripRoundTrip,
		Journeys:    []models.Journey{outJourney, retJourney},
		TotalPrice:  payload.Onward.Fare.PublishedFare + payload.Return.Fare.PublishedFare,
		Refundable:  outJourney.Refundable && retJourney.Refundable,
		Ancillaries: mergeCatalogs(payload.Onward, payload.Return),
	}
}

// ParseMultiCity maps a result with several segment groups into one
// journey per group. Per-group fares come from the Fares list when the
// provider sends one; otherwise the single result fare covers the
// whole itinerary and is attributed to the first leg.
func ParseMultiCity(result *dto.FlightResult) *models.ParsedTrip {
	if result == nil || len(result.Segments) == 0 {
		return nil
	}

	journeys := make([]models.Journey, 0, len(result.Segments))
	total := 0.0
	refundable := true
	for i, group := range result.Segments {
		if len(group) == 0 {
			continue
		}
		journey := buildJourney(fmt.Sprintf("leg-%d", i+1), group, fareForGroup(result, i))
		total += float64(journey.BasePrice)
		refundable = refundable && journey.Refundable
		journeys = append(journeys, journey)
	}
	if len(journeys) == 0 {
		return nil
	}

	return &models.ParsedTrip{
		Type:        models.TripMultiCity,
		Journeys:    journeys,
		TotalPrice:  total,
		Refundable:  refundable,
		Ancillaries: buildCatalog(result),
	}
}

func buildCatalog(result *dto.FlightResult) models.AncillaryCatalog {
	return models.AncillaryCatalog{
		Meals:    NormalizeSSROptions(result.Meals),
		Baggages: NormalizeSSROptions(result.Baggages),
		Seats:    NormalizeSSROptions(result.Seats),
	}
}

func mergeCatalogs(onward, back *dto.FlightResult) models.AncillaryCatalog {
	return models.AncillaryCatalog{
		Meals:    NormalizeSSROptions(append(append(dto.SSRGroups{}, onward.Meals...), back.Meals...)),
		Baggages: NormalizeSSROptions(append(append(dto.SSRGroups{}, onward.Baggages...), back.Baggages...)),
		Seats:    NormalizeSSROptions(append(append(dto.SSRGroups{}, onward.Seats...), back.Seats...)),
	}
}

func fareForGroup(result *dto.FlightResult, index int) dto.Fare {
	if index < len(result.Fares) {
		return result.Fares[index]
	}
	if index == 0 {
		return result.Fare
	}
	return dto.Fare{}
}

func buildJourney(kind string, raw []dto.RawSegment, fare dto.Fare) models.Journey {
	segments := make([]models.Segment, 0, len(raw))
	declared := 0
	for i, s := range raw {
		segment := normalizeSegment(s)
		if i+1 < len(raw) {
			segment.LayoverTime = layoverMinutes(s.ArrTime, raw[i+1].DepTime)
		}
		declared += segment.Duration
		segments = append(segments, segment)
	}

	fareClass := strings.TrimSpace(fare.FareClassification.Type)
	if fareClass == "" {
		fareClass = DefaultFareClass
	}

	return models.Journey{
		Kind:          kind,
		Segments:      segments,
		Stops:         len(raw) - 1,
		Duration:      declared,
		TotalMinutes:  wallClockMinutes(raw),
		PublishedFare: fare.PublishedFare,
		BasePrice:     int64(math.Round(fare.PublishedFare)),
		BaseFare:      fare.BaseFare,
		Tax:           fare.Tax,
		FareClass:     fareClass,
		Refundable:    fare.IsRefundable,
		Baggage:       strings.TrimSpace(fare.Baggage),
	}
}

func normalizeSegment(s dto.RawSegment) models.Segment {
	duration := s.Duration
	if duration < 0 {
		duration = 0
	}

	return models.Segment{
		Origin:      normalizeAirport(s.Origin),
		Destination: normalizeAirport(s.Destination),
		Carrier: models.CarrierInfo{
			AirlineCode:  strings.TrimSpace(s.Airline.AirlineCode),
			AirlineName:  fallbackNA(s.Airline.AirlineName),
			FlightNumber: strings.TrimSpace(s.Airline.FlightNumber),
			Equipment:    strings.TrimSpace(s.Airline.Craft),
		},
		DepartureAt: strings.TrimSpace(s.DepTime),
		ArrivalAt:   strings.TrimSpace(s.ArrTime),
		Duration:    duration,
		CabinClass:  strings.TrimSpace(s.CabinClass),
	}
}

func normalizeAirport(a dto.Airport) models.AirportInfo {
	return models.AirportInfo{
		Code:     strings.ToUpper(strings.TrimSpace(a.AirportCode)),
		Name:     fallbackNA(a.AirportName),
		City:     fallbackNA(a.CityName),
		Terminal: strings.TrimSpace(a.Terminal),
		Country:  strings.TrimSpace(a.CountryName),
	}
}

func fallbackNA(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "N/A"
	}
	return trimmed
}

// layoverMinutes is the idle time between one segment's arrival and the
// next segment's departure, clamped at zero: provider timestamps are
// occasionally out of order and a negative layover must never surface.
func layoverMinutes(arrive, nextDepart string) int {
	arr, okArr := parseTime(arrive)
	dep, okDep := parseTime(nextDepart)
	if !okArr || !okDep {
		return 0
	}

	minutes := int(dep.Sub(arr).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// wallClockMinutes spans the journey from first departure to last
// arrival. Malformed timestamps yield zero.
func wallClockMinutes(raw []dto.RawSegment) int {
	if len(raw) == 0 {
		return 0
	}

	first, okFirst := parseTime(raw[0].DepTime)
	last, okLast := parseTime(raw[len(raw)-1].ArrTime)
	if !okFirst || !okLast {
		return 0
	}

	minutes := int(last.Sub(first).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// FlattenSSRGroups collapses the grouped wire shape into a single
// stable-ordered option list.
func FlattenSSRGroups(groups dto.SSRGroups) []dto.SSROption {
	flat := make([]dto.SSROption, 0, len(groups))
	for _, group := range groups {
		flat = append(flat, group...)
	}
	return flat
}

// DedupeSSROptions drops "no selection" sentinels and collapses
// duplicate codes, keeping the first occurrence. Order is preserved,
// and applying it twice changes nothing.
func DedupeSSROptions(list []dto.SSROption) []dto.SSROption {
	result := make([]dto.SSROption, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, option := range list {
		code := strings.TrimSpace(option.Code)
		if code == "" {
			continue
		}
		if _, sentinel := noSelectionCodes[code]; sentinel {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, option)
	}
	return result
}

// NormalizeSSROptions is the full ancillary pipeline: flatten, filter,
// dedupe, project to the view model.
func NormalizeSSROptions(groups dto.SSRGroups) []models.SSROption {
	deduped := DedupeSSROptions(FlattenSSRGroups(groups))
	options := make([]models.SSROption, 0, len(deduped))
	for _, option := range deduped {
		options = append(options, models.SSROption{
			Code:        strings.TrimSpace(option.Code),
			Description: strings.TrimSpace(option.Description),
			Price:       option.Price,
			Origin:      strings.ToUpper(strings.TrimSpace(option.Origin)),
			Destination: strings.ToUpper(strings.TrimSpace(option.Destination)),
		})
	}
	return options
}

func parseTime(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

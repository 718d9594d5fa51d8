package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

const (
	ToolSearchHotels           = "search_hotels"
	ToolCheckHotelAvailability = "check_hotel_availability"
	ToolCurrentDate            = "current_date"

	searchResultLimit = 5
	noHotelsOutcome   = "No hotels found"
)

// facilityFlags are the boolean filter arguments search_hotels accepts; each
// maps onto a facility tag in the hotel directory.
var facilityFlags = []string{"wifi", "parking", "pool", "gym", "spa", "restaurant"}

var hotelWordPattern = regexp.MustCompile(`(?i)hotel`)

func searchHotelsSpec() contractx.ToolSpec {
	params := map[string]contractx.ParamSpec{
		"search_term":       {Type: contractx.ParamString, Desc: "Free-text term matched against hotel name, city, and state"},
		"min_price":         {Type: contractx.ParamNumber, Desc: "Lowest acceptable price per night"},
		"max_price":         {Type: contractx.ParamNumber, Desc: "Highest acceptable price per night"},
		"rating":            {Type: contractx.ParamNumber, Desc: "Rating threshold between 0 and 5"},
		"rating_comparator": {Type: contractx.ParamString, Desc: "How to apply the rating threshold: gte (default) or lte"},
	}
	for _, flag := range facilityFlags {
		params[flag] = contractx.ParamSpec{Type: contractx.ParamBoolean, Desc: "Require the " + flag + " facility"}
	}
	return contractx.ToolSpec{
		Name:   ToolSearchHotels,
		Desc:   "Search approved hotels by facilities, free-text term, price range, and rating. Returns at most 5 results.",
		Params: params,
	}
}

func newSearchHotelsHandler(directory contractx.HotelDirectory) Handler {
	return func(ctx context.Context, identity string, args map[string]any) (string, error) {
		filter := contractx.HotelFilter{
			SearchTerm:       stringArg(args, "search_term"),
			RatingComparator: strings.ToLower(stringArg(args, "rating_comparator")),
		}
		for _, flag := range facilityFlags {
			if boolArg(args, flag) {
				filter.Facilities = append(filter.Facilities, flag)
			}
		}
		if v, ok := floatArg(args, "min_price"); ok {
			filter.MinPrice = v
		}
		if v, ok := floatArg(args, "max_price"); ok {
			filter.MaxPrice = v
		}
		if v, ok := floatArg(args, "rating"); ok {
			filter.Rating = v
		}

		hotels, err := directory.Search(ctx, filter, searchResultLimit)
		if err != nil {
			return "", fmt.Errorf("hotel search failed: %w", err)
		}
		if len(hotels) == 0 {
			return noHotelsOutcome, nil
		}

		lines := make([]string, 0, len(hotels))
		for i, h := range hotels {
			lines = append(lines, fmt.Sprintf("%d. %s, %s, %s | price: %.0f/night | rating: %.1f | max guests per room: %d | hotel id: %s",
				i+1, h.Title, h.City, h.State, h.Price, h.Rating, h.MaxGuests, h.ID))
		}
		return "Found hotels:\n" + strings.Join(lines, "\n"), nil
	}
}

func checkHotelAvailabilitySpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name: ToolCheckHotelAvailability,
		Desc: "Check whether a hotel with the given name exists and list matches with their identifiers.",
		Params: map[string]contractx.ParamSpec{
			"name": {Type: contractx.ParamString, Desc: "Hotel name as given by the guest", Required: true},
		},
	}
}

func newCheckHotelAvailabilityHandler(directory contractx.HotelDirectory) Handler {
	return func(ctx context.Context, identity string, args map[string]any) (string, error) {
		name := strings.TrimSpace(hotelWordPattern.ReplaceAllString(stringArg(args, "name"), ""))

		hotels, err := directory.FindMatching(ctx, name)
		if err != nil {
			return "", fmt.Errorf("availability check failed: %w", err)
		}
		if len(hotels) == 0 {
			return noHotelsOutcome, nil
		}

		lines := make([]string, 0, len(hotels))
		for _, h := range hotels {
			lines = append(lines, fmt.Sprintf("%s, max guests:%d, city: %s, hotel id: %s",
				h.Title, h.MaxGuests, h.City, h.ID))
		}
		return "Found hotels: " + strings.Join(lines, "\n"), nil
	}
}

func currentDateSpec() contractx.ToolSpec {
	return contractx.ToolSpec{
		Name: ToolCurrentDate,
		Desc: "Return the current date in dd/mm/yyyy format.",
	}
}

func newCurrentDateHandler(now func() time.Time) Handler {
	return func(ctx context.Context, identity string, args map[string]any) (string, error) {
		return now().Format("02/01/2006"), nil
	}
}

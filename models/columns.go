package models

import "strconv"

// Canonical column names.
const (
	ColRestaurantID      = "restaurant_id"
	ColRestaurantName    = "restaurant_name"
	ColCountryCode       = "country_code"
	ColCity              = "city"
	ColAddress           = "address"
	ColLocality          = "locality"
	ColLocalityVerbose   = "locality_verbose"
	ColLongitude         = "longitude"
	ColLatitude          = "latitude"
	ColCuisines          = "cuisines"
	ColAverageCostForTwo = "average_cost_for_two"
	ColCurrency          = "currency"
	ColHasTableBooking   = "has_table_booking"
	ColHasOnlineDelivery = "has_online_delivery"
	ColIsDeliveringNow   = "is_delivering_now"
	ColSwitchToOrderMenu = "switch_to_order_menu"
	ColPriceRange        = "price_range"
	ColAggregateRating   = "aggregate_rating"
	ColRatingColor       = "rating_color"
	ColRatingText        = "rating_text"
	ColVotes             = "votes"
	ColCountryName       = "country_name"
	ColUniqueCuisine     = "unique_cuisine"
)

// Value renders the named column of r as text. Missing measures render as
// the empty string, unknown columns come from Extra.
func (r *Restaurant) Value(column string) string {
	switch column {
	case ColRestaurantID:
		return strconv.FormatInt(r.RestaurantID, 10)
	case ColRestaurantName:
		return r.RestaurantName
	case ColCountryCode:
		return strconv.Itoa(r.CountryCode)
	case ColCity:
		return r.City
	case ColAddress:
		return r.Address
	case ColLocality:
		return r.Locality
	case ColLocalityVerbose:
		return r.LocalityVerbose
	case ColLongitude:
		return formatFloat(r.Longitude)
	case ColLatitude:
		return formatFloat(r.Latitude)
	case ColCuisines:
		return r.Cuisines
	case ColAverageCostForTwo:
		return formatFloat(r.AverageCostForTwo)
	case ColCurrency:
		return r.Currency
	case ColHasTableBooking:
		return r.HasTableBooking
	case ColHasOnlineDelivery:
		return r.HasOnlineDelivery
	case ColIsDeliveringNow:
		return r.IsDeliveringNow
	case ColPriceRange:
		return r.PriceRange
	case ColAggregateRating:
		return formatFloat(r.AggregateRating)
	case ColRatingColor:
		return r.RatingColor
	case ColRatingText:
		return r.RatingText
	case ColVotes:
		if r.Votes == nil {
			return ""
		}
		return strconv.FormatInt(*r.Votes, 10)
	case ColCountryName:
		return r.CountryName
	case ColUniqueCuisine:
		return r.UniqueCuisine
	}
	return r.Extra[column]
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

package domain

type Category string

const (
	CategoryRestaurant     Category = "restaurant"
	CategoryOutdoor        Category = "outdoor"
	CategoryEntertainment  Category = "entertainment"
	CategoryIndoorActivity Category = "indoor-activity"
	CategoryCafe           Category = "cafe"
	CategoryMuseum         Category = "museum"
)

// ValidCategories is the canonical set of accepted category strings.
// The set is open: adapters may emit categories outside it, but requests
// and feedback are validated against it.
var ValidCategories = map[string]bool{
	"restaurant": true, "outdoor": true, "entertainment": true,
	"indoor-activity": true, "cafe": true, "museum": true,
}

// AllCategories lists the canonical categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryRestaurant,
		CategoryOutdoor,
		CategoryEntertainment,
		CategoryIndoorActivity,
		CategoryCafe,
		CategoryMuseum,
	}
}

type WeatherCondition string

const (
	WeatherClear   WeatherCondition = "clear"
	WeatherCloudy  WeatherCondition = "cloudy"
	WeatherRain    WeatherCondition = "rain"
	WeatherStorm   WeatherCondition = "storm"
	WeatherExtreme WeatherCondition = "extreme"
)

// ValidWeatherConditions is the canonical set of accepted condition strings.
var ValidWeatherConditions = map[string]bool{
	"clear": true, "cloudy": true, "rain": true, "storm": true, "extreme": true,
}

// IsSevere reports whether the condition restricts a plan to indoor venues.
func (w WeatherCondition) IsSevere() bool {
	switch w {
	case WeatherRain, WeatherStorm, WeatherExtreme:
		return true
	default:
		return false
	}
}

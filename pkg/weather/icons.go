package weather

// Meteosource の weather コードを絵文字アイコンへ対応付けるテーブルなのだ。
var weatherIcons = map[string]string{
	// 晴天系
	"not_available": "❓",
	"sunny":         "☀️",
	"mostly_sunny":  "🌤️",
	"partly_sunny":  "⛅",
	"mostly_cloudy": "🌥️",
	"cloudy":        "☁️",
	"overcast":      "☁️",
	"overcast_with_low_clouds": "☁️",

	// 霧
	"fog": "🌫️",

	// 雨系
	"light_rain":          "🌦️",
	"rain":                "🌧️",
	"possible_rain":       "🌦️",
	"rain_shower":         "🌧️",
	"thunderstorm":        "⛈️",
	"local_thunderstorms": "⛈️",

	// 雪系
	"light_snow":             "🌨️",
	"snow":                   "🌨️",
	"possible_snow":          "🌨️",
	"snow_shower":            "🌨️",
	"rain_and_snow":          "🌨️",
	"possible_rain_and_snow": "🌨️",
	"freezing_rain":          "🌨️",
	"possible_freezing_rain": "🌨️",
	"hail":                   "🌨️",

	// 夜間
	"clear_night":                    "🌙",
	"mostly_clear_night":             "🌙",
	"partly_clear_night":             "🌙",
	"mostly_cloudy_night":            "☁️",
	"cloudy_night":                   "☁️",
	"overcast_with_low_clouds_night": "☁️",
	"rain_shower_night":              "🌧️",
	"local_thunderstorms_night":      "⛈️",
	"snow_shower_night":              "🌨️",
	"rain_and_snow_night":            "🌨️",
	"possible_freezing_rain_night":   "🌨️",
}

const defaultIcon = "❓"

// IconFor は weather コードに対応する絵文字を返すのだ。
// 未知のコードは既定アイコンに落とす。
func IconFor(code string) string {
	if icon, ok := weatherIcons[code]; ok {
		return icon
	}
	return defaultIcon
}

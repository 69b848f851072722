package kakao

import (
	"fmt"
	"net/url"
)

// MapURL builds a Kakao Map deep link showing one place.
func MapURL(name, x, y string) string {
	return fmt.Sprintf("https://map.kakao.com/link/map/%s,%s,%s", url.PathEscape(name), y, x)
}

// DirectionsURL builds a Kakao Map routing link to a destination,
// optionally anchored at an origin. Kakao's link format is y-first.
func DirectionsURL(destName, destX, destY, originX, originY string) string {
	to := fmt.Sprintf("https://map.kakao.com/link/to/%s,%s,%s", url.PathEscape(destName), destY, destX)
	if originX != "" && originY != "" {
		return fmt.Sprintf("%s/from/%s,%s", to, originY, originX)
	}
	return to
}

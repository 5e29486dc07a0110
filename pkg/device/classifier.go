// Package device derives a coarse device category plus browser and OS
// names from a User-Agent string and an optional screen-size hint.
package device

import (
	"strconv"
	"strings"

	"github.com/mileusna/useragent"
)

// Device categories returned by Classify.
const (
	CategoryDesktop = "desktop"
	CategoryLaptop  = "laptop"
	CategoryMobile  = "mobile"
	CategoryTablet  = "tablet"
	CategoryBot     = "bot"
)

// desktopScreenWidth is the largest width still assumed to be a laptop
// display. Above it the machine is treated as a desktop with an external
// monitor.
const desktopScreenWidth = 1920

// Classify maps a User-Agent to a device category, defaulting to desktop
// when nothing can be detected.
//
// When the UA reads as desktop and the reported screen width is at most
// the laptop threshold, the result is reclassified as laptop. This is a
// tie-break heuristic for small built-in displays; no further refinement
// is attempted.
func Classify(userAgent, screen string) string {
	ua := useragent.Parse(userAgent)

	switch {
	case ua.Bot:
		return CategoryBot
	case ua.Mobile:
		return CategoryMobile
	case ua.Tablet:
		return CategoryTablet
	}

	if width, ok := screenWidth(screen); ok && width <= desktopScreenWidth {
		return CategoryLaptop
	}
	return CategoryDesktop
}

// BrowserOS returns the browser and operating system names parsed from
// the User-Agent, either of which may be empty.
func BrowserOS(userAgent string) (browser, os string) {
	ua := useragent.Parse(userAgent)
	return ua.Name, ua.OS
}

// screenWidth parses the width out of a "WIDTHxHEIGHT" hint.
func screenWidth(screen string) (int, bool) {
	w, _, found := strings.Cut(screen, "x")
	if !found {
		return 0, false
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// Package extract provides the pattern extractors used by the dialogue:
// VIN, e-mail, phone and model-year recognition over free Turkish text.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 17 chars over the VIN alphabet; I, O and Q are excluded by the
	// standard. No checksum validation: any matching run is accepted.
	vinRe   = regexp.MustCompile(`[A-HJ-NPR-Z0-9]{17}`)
	emailRe = regexp.MustCompile(`[^\s@]+@[^\s@]+\.[^\s@]+`)
	phoneRe = regexp.MustCompile(`[0-9]{10,11}`)
	yearRe  = regexp.MustCompile(`[0-9]{4}`)
)

// VIN returns the first VIN-shaped substring of text, uppercased, and
// whether one was found.
func VIN(text string) (string, bool) {
	m := vinRe.FindString(strings.ToUpper(text))
	return m, m != ""
}

// Email returns the first e-mail-shaped substring of text.
func Email(text string) (string, bool) {
	m := emailRe.FindString(text)
	return m, m != ""
}

// Phone returns the first contiguous 10-11 digit run of text.
func Phone(text string) (string, bool) {
	m := phoneRe.FindString(text)
	return m, m != ""
}

// Year returns the first 4-digit run of text as an int.
func Year(text string) (int, bool) {
	m := yearRe.FindString(text)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// PlaceholderVIN derives the synthetic VIN used for dialogue-created
// vehicles where no real VIN was supplied: "TEMP" plus the model year
// zero-padded to 13 digits, 17 characters total. Callers must treat
// such VINs as non-standard keys.
func PlaceholderVIN(year int) string {
	return fmt.Sprintf("TEMP%013d", year)
}

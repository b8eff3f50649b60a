package verification

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"address-verification-api/internal/models"
)

const (
	// MaxMessageLength is the hard cap on an outcome message, in characters.
	MaxMessageLength = 200

	listingThreshold = 195
	tooManyMarker    = "Too many to display..."
	ellipsis         = "..."
)

func verifiedMessage(linzID *int64, inputAddress string, geocoded bool) string {
	id := "n/a"
	if linzID != nil {
		id = fmt.Sprintf("%d", *linzID)
	}

	msg := fmt.Sprintf("Verified with Addy to match LINZ: %s. Input address: %s. ", id, inputAddress)
	if geocoded {
		return msg + "Coordinates updated."
	}
	return msg + "Coordinates NOT updated."
}

// ambiguousMessage lists alternatives in reply order until the next label would reach the listing threshold,
// then closes with a marker that still fits the cap.
func ambiguousMessage(reason string, alternatives []models.AlternativeReference) string {
	var b strings.Builder
	b.WriteString("Not verified: ")
	b.WriteString(reason)
	n := utf8.RuneCountInString(b.String())

	for _, alt := range alternatives {
		label := utf8.RuneCountInString(alt.Label)
		if n+label >= listingThreshold {
			if n+len(tooManyMarker) <= MaxMessageLength {
				b.WriteString(tooManyMarker)
			} else {
				b.WriteString(ellipsis)
			}
			break
		}

		b.WriteString(alt.Label)
		b.WriteString("; ")
		n += label + 2
	}

	return b.String()
}

func clampMessage(msg string) string {
	if utf8.RuneCountInString(msg) <= MaxMessageLength {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:MaxMessageLength-len(ellipsis)]) + ellipsis
}

package verification

import (
	"strings"

	"address-verification-api/internal/models"
)

// AssembleAddress builds the query string sent to the service: the address fields in postal order, separated
// by single spaces, with empty fields left out.
func AssembleAddress(in models.AddressInput) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{in.Street1, in.Street2, in.City, in.State, in.PostalCode} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

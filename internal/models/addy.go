package models

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// AddressCandidate is an address record returned by the Addy validation service.
// Identifiers and coordinates are pointers: the service omits or nulls them for addresses it cannot match to a
// source record or cannot geocode, and that must not read as id 0 or position (0, 0).
type AddressCandidate struct {
	ID        *int64 `json:"id"`
	DPID      *int64 `json:"dpid"`
	LINZID    *int64 `json:"linzid"`
	ParcelID  *int64 `json:"parcelid"`
	Meshblock *int64 `json:"meshblock"`

	Number       string `json:"number"`
	RDNumber     string `json:"rdnumber"`
	Alpha        string `json:"alpha"`
	UnitType     string `json:"unittype"`
	UnitNumber   string `json:"unitnumber"`
	Floor        string `json:"floor"`
	Street       string `json:"street"`
	Suburb       string `json:"suburb"`
	City         string `json:"city"`
	MailTown     string `json:"mailtown"`
	Territory    string `json:"territory"`
	Region       string `json:"region"`
	Postcode     string `json:"postcode"`
	Building     string `json:"building"`
	Type         string `json:"type"`
	BoxBagNumber string `json:"boxbagnumber"`
	BoxBagLobby  string `json:"boxbaglobby"`
	Modified     string `json:"modified"`

	Full        string `json:"full"`
	DisplayLine string `json:"displayline"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Address3    string `json:"address3"`
	Address4    string `json:"address4"`

	// X is the WGS84 longitude, Y the latitude.
	X *string `json:"x"`
	Y *string `json:"y"`

	PAF     bool `json:"paf"`
	Deleted bool `json:"deleted"`
}

// Geocoded reports whether the candidate carries both coordinates.
func (c *AddressCandidate) Geocoded() bool {
	return !blank(c.X) && !blank(c.Y)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// AlternativeReference is a candidate listed on an ambiguous match.
type AlternativeReference struct {
	ID    *int64 `json:"id"`
	Label string `json:"a"`
}

// VerificationResponse is the body of an Addy validation reply.
type VerificationResponse struct {
	Address      *AddressCandidate      `json:"address"`
	Alternatives []AlternativeReference `json:"alternatives"`
	Reason       string                 `json:"reason"`
	FoundPrefix  bool                   `json:"foundPrefix"`
	Prefix       string                 `json:"prefix"`
}

// ParseVerificationResponse decodes a validation reply. Unknown fields are ignored and nulls decode as absent.
func ParseVerificationResponse(body []byte) (*VerificationResponse, error) {
	var resp VerificationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "models: decode verification response")
	}
	return &resp, nil
}

// TransportResult is what the transport hands back for one validation request.
type TransportResult struct {
	StatusCode int
	// Status is the status description, e.g. "Service Unavailable".
	Status string
	Body   []byte
}

// Success reports whether the request completed with a 2xx status.
func (r TransportResult) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

package verification

import (
	"strconv"
	"strings"
	"time"

	"address-verification-api/internal/models"

	"github.com/pkg/errors"
)

// ServiceName tags the attempt audit fields of every location the engine touches.
const ServiceName = "Addy"

// Outcome is the verification status reported to the caller.
type Outcome int

const (
	// OutcomeNone means the address was not verified: no match, or an ambiguous one.
	OutcomeNone Outcome = iota
	// OutcomeStandardized means the address was matched and its fields replaced with the service's.
	OutcomeStandardized
	// OutcomeConnectionError means the service could not be reached or answered with a non-2xx status.
	OutcomeConnectionError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStandardized:
		return "standardized"
	case OutcomeConnectionError:
		return "connection_error"
	default:
		return "none"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the reconciled outcome of one validation reply.
type Result struct {
	Outcome Outcome
	// Message is a human-readable summary of at most MaxMessageLength characters.
	Message string
	// Candidate is the matched address on a confident match.
	Candidate *models.AddressCandidate
	// Alternatives are the candidates offered on an ambiguous match.
	Alternatives []models.AlternativeReference
	// Geocoded is true when the location's coordinates were replaced.
	Geocoded bool
	// Prefix is the address prefix the service detected, such as "Rear Unit".
	Prefix string
}

// Engine reconciles validation replies against locations. It holds no per-call state.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine stamping times from now, or time.Now when nil.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Verify interprets the transport result for inputAddress and applies a confident match to loc.
// loc is only written to, never read, and is not retained.
func (e *Engine) Verify(inputAddress string, transport models.TransportResult, loc *models.Location) (Result, error) {
	e.stampAttempt(loc)

	if !transport.Success() {
		return Result{
			Outcome: OutcomeConnectionError,
			Message: clampMessage(transport.Status),
		}, nil
	}

	resp, err := models.ParseVerificationResponse(transport.Body)
	if err != nil {
		return Result{}, &MalformedResponseError{Err: err}
	}

	var prefix string
	if resp.FoundPrefix {
		prefix = resp.Prefix
	}

	switch m := Classify(resp).(type) {
	case Confident:
		geocoded, err := e.apply(loc, m.Candidate)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Outcome:   OutcomeStandardized,
			Message:   clampMessage(verifiedMessage(m.Candidate.LINZID, inputAddress, geocoded)),
			Candidate: m.Candidate,
			Geocoded:  geocoded,
			Prefix:    prefix,
		}, nil

	case Ambiguous:
		return Result{
			Outcome:      OutcomeNone,
			Message:      clampMessage(ambiguousMessage(m.Reason, m.Alternatives)),
			Alternatives: m.Alternatives,
			Prefix:       prefix,
		}, nil

	case NoMatch:
		if strings.TrimSpace(m.Reason) == "" {
			return Result{}, &MalformedResponseError{Err: errors.New("no address, alternatives or reason")}
		}
		return Result{
			Outcome: OutcomeNone,
			Message: clampMessage(m.Reason),
			Prefix:  prefix,
		}, nil

	default:
		return Result{}, errors.Errorf("verification: unhandled match outcome %T", m)
	}
}

func (e *Engine) stampAttempt(loc *models.Location) {
	now := e.now()
	loc.StandardizeAttemptedServiceType = ServiceName
	loc.StandardizeAttemptedAt = &now
	loc.GeocodeAttemptedServiceType = ServiceName
	loc.GeocodeAttemptedAt = &now
}

// apply copies a matched candidate onto loc and reports whether its coordinates were set.
// Coordinates are parsed before anything is written so a bad payload leaves loc as it was.
func (e *Engine) apply(loc *models.Location, c *models.AddressCandidate) (bool, error) {
	var lat, lon float64
	geocode := c.Geocoded()
	if geocode {
		var err error
		if lon, err = parseCoordinate("longitude", *c.X); err != nil {
			return false, err
		}
		if lat, err = parseCoordinate("latitude", *c.Y); err != nil {
			return false, err
		}
	}

	now := e.now()
	loc.Street1 = c.Address1
	loc.Street2 = c.Address2
	loc.City = c.City
	loc.State = ""
	loc.PostalCode = c.Postcode
	loc.StandardizedAt = &now
	if c.LINZID != nil {
		loc.StandardizeAttemptedResult = strconv.FormatInt(*c.LINZID, 10)
	}

	if !geocode || !loc.SetPointFromLatLong(lat, lon) {
		return false, nil
	}
	loc.GeocodedAt = &now
	return true, nil
}

func parseCoordinate(axis, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &CoordinateParseError{Axis: axis, Value: value, Err: err}
	}
	return v, nil
}

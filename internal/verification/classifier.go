package verification

import "address-verification-api/internal/models"

// MatchOutcome is the cardinality of a validation reply. It is one of Confident, Ambiguous or NoMatch.
type MatchOutcome interface {
	matchOutcome()
}

// Confident is a reply naming exactly one address.
type Confident struct {
	Candidate *models.AddressCandidate
}

// Ambiguous is a reply offering alternatives. It wins over a matched address carried in the same reply.
type Ambiguous struct {
	Alternatives []models.AlternativeReference
	Reason       string
}

// NoMatch is a reply with neither a matched address nor alternatives.
type NoMatch struct {
	Reason string
}

func (Confident) matchOutcome() {}
func (Ambiguous) matchOutcome() {}
func (NoMatch) matchOutcome()   {}

// Classify reports how many addresses a reply matched. It never fails and does not check that a matched
// candidate is complete.
func Classify(resp *models.VerificationResponse) MatchOutcome {
	if resp == nil {
		return NoMatch{}
	}

	switch {
	case len(resp.Alternatives) > 0:
		return Ambiguous{Alternatives: resp.Alternatives, Reason: resp.Reason}
	case resp.Address != nil:
		return Confident{Candidate: resp.Address}
	default:
		return NoMatch{Reason: resp.Reason}
	}
}

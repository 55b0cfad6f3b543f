package tier

import "brandaudit/internal/model"

const (
	personalClause = "Mów o tej osobie jako ekspercie/twórcy budującym osobistą markę, unikaj odniesień do zespołu czy pracowników. " +
		"Skup się na osobistym wpływie, autentyczności i budowaniu autorytetu."
	organizationClause = "Analizuj z perspektywy organizacji, zespołu i struktury firmowej. " +
		"Odnoś się do pracowników, kultury organizacyjnej i systemów biznesowych."
)

// SegmentClause returns the framing instruction for a segment, independent
// of the score band. It is empty when no segment was given.
func SegmentClause(s model.Segment) string {
	switch s {
	case model.SegmentPersonal:
		return personalClause
	case model.SegmentOrganization:
		return organizationClause
	default:
		return ""
	}
}

// SegmentLabel is the human-readable segment name put into the directive
func SegmentLabel(s model.Segment) string {
	switch s {
	case model.SegmentPersonal:
		return "Marka Osobista (freelancer, ekspert, twórca, konsultant)"
	case model.SegmentOrganization:
		return "Marka Firmy (zespół, organizacja, biznes B2B/B2C)"
	default:
		return "Nie określono"
	}
}

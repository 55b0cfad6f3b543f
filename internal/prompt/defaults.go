package prompt

import "brandaudit/internal/model"

// Defaults are the placeholders used when a name is blank
type Defaults struct {
	UserName          string
	PersonalBrand     string
	OrganizationBrand string
	UnknownBrand      string
}

// PolishDefaults is the production set
var PolishDefaults = Defaults{
	UserName:          "Użytkownik",
	PersonalBrand:     "Twoja marka osobista",
	OrganizationBrand: "Twoja firma",
	UnknownBrand:      "Twoja marka",
}

func (d Defaults) brandFallback(segment model.Segment) string {
	switch segment {
	case model.SegmentPersonal:
		return d.PersonalBrand
	case model.SegmentOrganization:
		return d.OrganizationBrand
	default:
		return d.UnknownBrand
	}
}

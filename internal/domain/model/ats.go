package model

import (
	"fmt"
	"strings"
)

// ATSType identifies an Applicant Tracking System provider hosting public
// job boards.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type ATSType string

// Known ATS providers, in descending probe tie-break priority.
const (
	ATSGreenhouse      ATSType = "greenhouse"
	ATSLever           ATSType = "lever"
	ATSAshby           ATSType = "ashby"
	ATSWorkday         ATSType = "workday"
	ATSSmartRecruiters ATSType = "smartrecruiters"
	ATSICIMS           ATSType = "icims"
	ATSTaleo           ATSType = "taleo"
	ATSSuccessFactors  ATSType = "successfactors"
	ATSWorkable        ATSType = "workable"
	ATSBreezy          ATSType = "breezy"
	ATSRecruitee       ATSType = "recruitee"
	ATSPersonio        ATSType = "personio"
	ATSTeamtailor      ATSType = "teamtailor"
	ATSJazz            ATSType = "jazz"
	ATSPinpoint        ATSType = "pinpoint"
)

// AllATSTypes lists every known provider in tie-break priority order
// (highest first).
func AllATSTypes() []ATSType {
	return []ATSType{
		ATSGreenhouse,
		ATSLever,
		ATSAshby,
		ATSWorkday,
		ATSSmartRecruiters,
		ATSICIMS,
		ATSTaleo,
		ATSSuccessFactors,
		ATSWorkable,
		ATSBreezy,
		ATSRecruitee,
		ATSPersonio,
		ATSTeamtailor,
		ATSJazz,
		ATSPinpoint,
	}
}

// Valid returns true if the ATSType names a known provider.
func (t ATSType) Valid() bool {
	for _, known := range AllATSTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler so ATSType values can be
// parsed from env and JSON inputs.
func (t *ATSType) UnmarshalText(text []byte) error {
	v := ATSType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid ATSType: %q", v)
	}
	*t = v
	return nil
}

package models

type TokenType string
type ApplicationStatus string
type ExperienceLevel string
type EmploymentType string
type LocationType string

const (
	TokenTypePasswordReset TokenType = "PASSWORD_RESET"

	ApplicationStatusApplied            ApplicationStatus = "APPLIED"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"

	ExperienceLevelEntry     ExperienceLevel = "ENTRY_LEVEL"
	ExperienceLevelMid       ExperienceLevel = "MID_LEVEL"
	ExperienceLevelSenior    ExperienceLevel = "SENIOR_LEVEL"
	ExperienceLevelExecutive ExperienceLevel = "EXECUTIVE"

	EmploymentTypeFullTime   EmploymentType = "FULL_TIME"
	EmploymentTypePartTime   EmploymentType = "PART_TIME"
	EmploymentTypeContract   EmploymentType = "CONTRACT"
	EmploymentTypeInternship EmploymentType = "INTERNSHIP"

	LocationTypeRemote LocationType = "REMOTE"
	LocationTypeOnSite LocationType = "ON_SITE"
	LocationTypeHybrid LocationType = "HYBRID"
)

// Valid reports whether the status is one of the known application states.
// Decide endpoints reject anything outside this set instead of storing
// caller-supplied strings verbatim.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusInterviewScheduled, ApplicationStatusRejected:
		return true
	}
	return false
}

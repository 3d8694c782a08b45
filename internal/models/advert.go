package models

import (
	"strings"
	"time"
)

type JobAdvert struct {
	BaseModel
	Title           string          `gorm:"size:150;not null"`
	CompanyName     string          `gorm:"size:150;not null"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(50);not null"`
	EmploymentType  EmploymentType  `gorm:"type:varchar(50);not null"`
	Description     string          `gorm:"type:text;not null"`
	JobType         LocationType    `gorm:"type:varchar(50);not null"`
	Location        *string         `gorm:"size:255"`
	// No gorm default: a default tag makes GORM drop a false value from
	// the INSERT, silently publishing drafts. The service sets the default.
	IsPublished bool
	Deadline    time.Time `gorm:"not null"`
	Skills      *string   `gorm:"size:255"` // comma-separated
	CreatedByID string    `gorm:"not null;index"`

	CreatedBy    *User            `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	Applications []JobApplication `gorm:"foreignKey:JobAdvertID;constraint:OnDelete:CASCADE"`
}

// IsActive reports whether the advert should appear in public listings:
// published and not past its deadline.
func (a *JobAdvert) IsActive(now time.Time) bool {
	return a.IsPublished && !a.Deadline.Before(now)
}

// SkillList splits the stored comma-separated skills into trimmed entries.
func (a *JobAdvert) SkillList() []string {
	if a.Skills == nil || *a.Skills == "" {
		return []string{}
	}

	parts := strings.Split(*a.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

package models

type JobApplication struct {
	BaseModel
	Name         string `gorm:"size:50;not null"`
	Email        string `gorm:"not null;index"`
	PortfolioURL *string
	ResumePath   string            `gorm:"not null"`
	Status       ApplicationStatus `gorm:"type:varchar(50);default:'APPLIED'"`
	JobAdvertID  string            `gorm:"not null;index"`

	JobAdvert *JobAdvert `gorm:"foreignKey:JobAdvertID;constraint:OnDelete:CASCADE"`
}

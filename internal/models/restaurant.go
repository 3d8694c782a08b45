package models

import "gorm.io/datatypes"

// Restaurant is the read-only listing table served by the restaurants API.
type Restaurant struct {
	BaseModel
	Name        string  `gorm:"size:150;not null"`
	Description string  `gorm:"type:text"`
	Address     string  `gorm:"size:255"`
	City        string  `gorm:"size:100;index"`
	Rating      float64 `gorm:"default:0"`
	ImageURL    string
	// datatypes.JSON picks the column type per dialect (jsonb on
	// postgres, json on mysql), so no explicit type here.
	Tags datatypes.JSON
}

package db_models

import "gorm.io/datatypes"

// Lead is an email captured mid-quiz, with the answers known at that moment.
type Lead struct {
	BaseModel
	SessionID string `gorm:"index"`
	Email     string `gorm:"index;not null"`
	AgeRange  string
	Goals     datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Answers   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is one persisted consent registration. Rows are insert-only.
type Submission struct {
	ID                     string    `gorm:"type:text;primaryKey"`
	Name                   string    `gorm:"column:name"`
	Email                  string    `gorm:"column:email;not null"`
	Phone                  string    `gorm:"column:phone;not null"`
	DOBConfirmed           bool      `gorm:"column:dob_confirmed;not null"`
	AgeRange               string    `gorm:"column:age_range"`
	WantsPhysical          bool      `gorm:"column:wants_physical;not null;default:false"`
	CEP                    string    `gorm:"column:cep"`
	Preferences            StringSet `gorm:"column:preferences"`
	Freq                   string    `gorm:"column:freq"`
	SocialNetwork          string    `gorm:"column:social_network"`
	SocialHandle           string    `gorm:"column:social_handle"`
	ConsentBasic           bool      `gorm:"column:consent_basic;not null"`
	ConsentPersonalization bool      `gorm:"column:consent_personalization;not null;default:false"`
	ConsentStats           bool      `gorm:"column:consent_stats;not null;default:false"`
	ConsentPartners        bool      `gorm:"column:consent_partners;not null;default:false"`
	CreatedAt              time.Time `gorm:"column:created_at;not null"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Columns maps the submission onto its storage column names. id and
// created_at are left to the store's defaults.
func (s *Submission) Columns() map[string]any {
	preferences := s.Preferences
	if preferences == nil {
		preferences = StringSet{}
	}

	return map[string]any{
		"name":                    s.Name,
		"email":                   s.Email,
		"phone":                   s.Phone,
		"dob_confirmed":           s.DOBConfirmed,
		"age_range":               s.AgeRange,
		"wants_physical":          s.WantsPhysical,
		"cep":                     s.CEP,
		"preferences":             []string(preferences),
		"freq":                    s.Freq,
		"social_network":          s.SocialNetwork,
		"social_handle":           s.SocialHandle,
		"consent_basic":           s.ConsentBasic,
		"consent_personalization": s.ConsentPersonalization,
		"consent_stats":           s.ConsentStats,
		"consent_partners":        s.ConsentPartners,
	}
}

package submission

import (
	"time"

	"github.com/akeren/consent-intake/internal/models"
	"github.com/akeren/consent-intake/pkg/constants"
)

// SubmitRequest is the JSON body of POST /api/submit. Required-field rules are
// applied in order by Validate; the validate tags only cover the vocabularies
// in pkg/constants.
type SubmitRequest struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	DOBConfirmed           bool     `json:"dobConfirmed"`
	AgeRange               string   `json:"ageRange" validate:"omitempty,oneof=18-24 25-34 35-44 45-54 55+"`
	WantsPhysicalInvites   bool     `json:"wantsPhysicalInvites"`
	CEP                    string   `json:"cep"`
	Preferences            []string `json:"preferences" validate:"omitempty,unique,dive,oneof=Eventos Cursos Promoções Notícias"`
	Freq                   string   `json:"freq" validate:"omitempty,oneof=Diária Semanal Mensal"`
	SocialNetwork          string   `json:"socialNetwork" validate:"omitempty,oneof=instagram facebook tiktok twitter"`
	SocialHandle           string   `json:"socialHandle"`
	ConsentBasic           bool     `json:"consentBasic"`
	ConsentPersonalization bool     `json:"consentPersonalization"`
	ConsentStats           bool     `json:"consentStats"`
	ConsentPartners        bool     `json:"consentPartners"`
}

// SubmissionReceipt identifies a stored submission. It is logged, not returned
// to the client.
type SubmissionReceipt struct {
	ID         string `json:"id"`
	ReceivedAt string `json:"received_at"`
}

// ========================================
// Mappers
// ========================================

func ToSubmissionModel(req *SubmitRequest) *models.Submission {
	if req == nil {
		return nil
	}

	var preferences models.StringSet
	if len(req.Preferences) > 0 {
		preferences = append(models.StringSet(nil), req.Preferences...)
	}

	return &models.Submission{
		Name:                   req.Name,
		Email:                  req.Email,
		Phone:                  req.Phone,
		DOBConfirmed:           req.DOBConfirmed,
		AgeRange:               req.AgeRange,
		WantsPhysical:          req.WantsPhysicalInvites,
		CEP:                    req.CEP,
		Preferences:            preferences,
		Freq:                   req.Freq,
		SocialNetwork:          req.SocialNetwork,
		SocialHandle:           req.SocialHandle,
		ConsentBasic:           req.ConsentBasic,
		ConsentPersonalization: req.ConsentPersonalization,
		ConsentStats:           req.ConsentStats,
		ConsentPartners:        req.ConsentPartners,
	}
}

func ToSubmissionReceipt(s *models.Submission) SubmissionReceipt {
	if s == nil {
		return SubmissionReceipt{}
	}

	receivedAt := s.CreatedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	return SubmissionReceipt{
		ID:         s.ID,
		ReceivedAt: receivedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

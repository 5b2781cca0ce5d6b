package submission

import (
	"unicode/utf8"

	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Messages returned for each rejected rule, in evaluation order.
const (
	MsgContactRequired     = "name, email and phone are required"
	MsgAgeNotConfirmed     = "you must confirm you are 18 or older"
	MsgAgeRangeRequired    = "age range is required"
	MsgPostalCodeRequired  = "postal code is required for physical invites"
	MsgBasicConsentMissing = "basic consent is required"
	MsgInvalidFieldValues  = "invalid field values"
	MsgInvalidPayload      = "invalid payload"
	MsgSaveFailed          = "database save failed"
	MsgReceived            = "registration received"
)

// MinPostalCodeLength is the shortest accepted CEP, counted in characters.
const MinPostalCodeLength = 8

type rule struct {
	message string
	passes  func(*SubmitRequest) bool
}

var rules = []rule{
	{MsgContactRequired, func(r *SubmitRequest) bool {
		return r.Name != "" && r.Email != "" && r.Phone != ""
	}},
	{MsgAgeNotConfirmed, func(r *SubmitRequest) bool {
		return r.DOBConfirmed
	}},
	{MsgAgeRangeRequired, func(r *SubmitRequest) bool {
		return r.AgeRange != ""
	}},
	{MsgPostalCodeRequired, func(r *SubmitRequest) bool {
		return !r.WantsPhysicalInvites || utf8.RuneCountInString(r.CEP) >= MinPostalCodeLength
	}},
	{MsgBasicConsentMissing, func(r *SubmitRequest) bool {
		return r.ConsentBasic
	}},
}

var vocabulary = validator.New()

// Validate applies the business rules in order and returns the first failure.
// Vocabulary checks run last so they never mask a required-field message.
func Validate(req *SubmitRequest) error {
	if req == nil {
		return apperrors.NewMalformedPayloadError(MsgInvalidPayload, nil)
	}

	for _, r := range rules {
		if !r.passes(req) {
			return apperrors.NewValidationError(r.message)
		}
	}

	if err := vocabulary.Struct(req); err != nil {
		details := apperrors.FormatValidationErrors(err, req)
		if len(details) == 0 {
			return apperrors.NewValidationError(MsgInvalidFieldValues)
		}
		return apperrors.NewFieldValidationError(MsgInvalidFieldValues, details)
	}

	return nil
}

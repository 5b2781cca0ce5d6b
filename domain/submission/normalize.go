package submission

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Normalize rewrites the enumerated fields to the form their vocabularies
// use: NFC for accented values such as "Promoções", lower case for the
// social network. Free-text fields are left untouched.
func Normalize(req *SubmitRequest) {
	if req == nil {
		return
	}

	req.AgeRange = norm.NFC.String(req.AgeRange)
	req.Freq = norm.NFC.String(req.Freq)
	req.SocialNetwork = lower.String(norm.NFC.String(req.SocialNetwork))

	for i, p := range req.Preferences {
		req.Preferences[i] = norm.NFC.String(p)
	}
}

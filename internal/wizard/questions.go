package wizard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/akeren/consent-intake/pkg/constants"
	"golang.org/x/text/unicode/norm"
)

type questionKind int

const (
	kindText questionKind = iota
	kindYesNo
	kindChoice
	kindMultiChoice
)

type question struct {
	step     int
	field    string
	label    string
	kind     questionKind
	options  []string
	optional bool
	visible  func(Record) bool
	apply    func(f *Form, answer string) error
}

var stepTitles = map[int]string{
	1: "Age",
	2: "Contact",
	3: "Preferences",
	4: "Consent",
}

var questions = []question{
	{step: 1, field: "dobConfirmed", label: "Do you confirm you are 18 or older?", kind: kindYesNo,
		apply: yesNo(DOBConfirmed)},
	{step: 1, field: "ageRange", label: "Age range", kind: kindChoice, options: constants.AgeRanges,
		visible: func(r Record) bool { return r.DOBConfirmed },
		apply:   choice(constants.AgeRanges, AgeRange)},

	{step: 2, field: "name", label: "Full name", kind: kindText, apply: text(Name)},
	{step: 2, field: "email", label: "Email", kind: kindText, apply: text(Email)},
	{step: 2, field: "phone", label: "Phone / WhatsApp", kind: kindText, apply: text(Phone)},

	{step: 3, field: "wantsPhysicalInvites", label: "Do you want to receive physical invites?", kind: kindYesNo,
		apply: yesNo(WantsPhysicalInvites)},
	{step: 3, field: "cep", label: "Postal code (CEP)", kind: kindText,
		visible: func(r Record) bool { return r.WantsPhysicalInvites },
		apply:   text(CEP)},
	{step: 3, field: "preferences", label: "Topics of interest (comma separated numbers)", kind: kindMultiChoice,
		options: constants.Preferences, optional: true, apply: multiChoice(constants.Preferences)},
	{step: 3, field: "freq", label: "How often may we contact you?", kind: kindChoice,
		options: constants.Frequencies, optional: true, apply: choice(constants.Frequencies, Freq)},
	{step: 3, field: "socialNetwork", label: "Preferred social network", kind: kindChoice,
		options: constants.SocialNetworks, optional: true, apply: choice(constants.SocialNetworks, SocialNetwork)},
	{step: 3, field: "socialHandle", label: "Social handle", kind: kindText, optional: true,
		visible: func(r Record) bool { return r.SocialNetwork != "" },
		apply:   text(SocialHandle)},

	{step: 4, field: "consentBasic", label: "I agree to receive communications (required)", kind: kindYesNo,
		apply: yesNo(ConsentBasic)},
	{step: 4, field: "consentPersonalization", label: "I allow personalized content", kind: kindYesNo,
		apply: yesNo(ConsentPersonalization)},
	{step: 4, field: "consentStats", label: "I allow anonymous statistics", kind: kindYesNo,
		apply: yesNo(ConsentStats)},
	{step: 4, field: "consentPartners", label: "I allow messages from partners", kind: kindYesNo,
		apply: yesNo(ConsentPartners)},
}

// stepOfField maps a required field to the step that collects it.
func stepOfField(field string) int {
	for _, q := range questions {
		if q.field == field {
			return q.step
		}
	}
	return FirstStep
}

func (q question) shown(r Record) bool {
	return q.visible == nil || q.visible(r)
}

func text(set func(string) Change) func(*Form, string) error {
	return func(f *Form, answer string) error {
		f.Update(set(strings.TrimSpace(answer)))
		return nil
	}
}

func yesNo(set func(bool) Change) func(*Form, string) error {
	return func(f *Form, answer string) error {
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "s", "sim":
			f.Update(set(true))
		case "n", "no", "nao", "não", "":
			f.Update(set(false))
		default:
			return fmt.Errorf("answer y or n")
		}
		return nil
	}
}

func choice(options []string, set func(string) Change) func(*Form, string) error {
	return func(f *Form, answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			f.Update(set(""))
			return nil
		}
		v, err := pick(options, answer)
		if err != nil {
			return err
		}
		f.Update(set(v))
		return nil
	}
}

func multiChoice(options []string) func(*Form, string) error {
	return func(f *Form, answer string) error {
		var picked []string
		for _, part := range strings.Split(answer, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := pick(options, part)
			if err != nil {
				return err
			}
			if !slices.Contains(picked, v) {
				picked = append(picked, v)
			}
		}

		f.Update(Preferences())
		for _, v := range picked {
			f.TogglePreference(v)
		}
		return nil
	}
}

// pick accepts a 1-based option number or the option text itself.
func pick(options []string, answer string) (string, error) {
	answer = norm.NFC.String(answer)

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(options))
		}
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%q is not an option", answer)
}

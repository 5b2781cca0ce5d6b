package wizard

import (
	"context"
	"errors"
	"slices"
	"sync"
)

const (
	FirstStep = 1
	LastStep  = 4
)

// Status messages shown after a submission attempt.
const (
	StatusSent   = "sent successfully"
	StatusFailed = "failed to send"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrIncomplete         = errors.New("required fields are missing")
	ErrNotOnFinalStep     = errors.New("submit is only available on the final step")
)

// Form is one registration session. Steps move strictly one at a time and
// only one submission may be in flight.
type Form struct {
	mu        sync.Mutex
	step      int
	record    Record
	sending   bool
	status    string
	submitter Submitter
}

func NewForm(submitter Submitter) *Form {
	return &Form{
		step:      FirstStep,
		record:    Record{Preferences: []string{}},
		submitter: submitter,
	}
}

func (f *Form) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Record returns a copy of the accumulated values.
func (f *Form) Record() Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record.clone()
}

func (f *Form) Sending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sending
}

func (f *Form) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Progress is the current step as a percentage of the total.
func (f *Form) Progress() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step * 100 / LastStep
}

// ShowsPostalCode reports whether the cep field belongs on step 3.
func (f *Form) ShowsPostalCode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record.WantsPhysicalInvites
}

// Update merges changes into the record. Fields not named keep their values.
func (f *Form) Update(changes ...Change) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, change := range changes {
		if change != nil {
			change(&f.record)
		}
	}
}

// TogglePreference selects p when absent and deselects it when present.
// Selection order is kept.
func (f *Form) TogglePreference(p string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := slices.Index(f.record.Preferences, p); i >= 0 {
		f.record.Preferences = slices.Delete(slices.Clone(f.record.Preferences), i, i+1)
		return
	}
	f.record.Preferences = append(slices.Clone(f.record.Preferences), p)
}

// CanAdvance reports whether Next would leave the current step.
func (f *Form) CanAdvance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canAdvanceLocked()
}

func (f *Form) canAdvanceLocked() bool {
	r := f.record
	switch f.step {
	case 1:
		return r.DOBConfirmed && r.AgeRange != ""
	case 2:
		return r.Email != "" && r.Phone != ""
	case 3:
		return true
	default:
		return false
	}
}

// Next moves to the following step when the current step's gate is open.
func (f *Form) Next() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step >= LastStep || !f.canAdvanceLocked() {
		return false
	}
	f.step++
	return true
}

// Back moves to the previous step. It is never gated.
func (f *Form) Back() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step <= FirstStep {
		return false
	}
	f.step--
	return true
}

// MissingFields lists, by JSON name, the required fields that are still empty.
// name is not listed; the endpoint enforces it.
func (f *Form) MissingFields() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return missingFields(f.record)
}

func missingFields(r Record) []string {
	var missing []string
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Phone == "" {
		missing = append(missing, "phone")
	}
	if !r.DOBConfirmed {
		missing = append(missing, "dobConfirmed")
	}
	if r.AgeRange == "" {
		missing = append(missing, "ageRange")
	}
	if r.WantsPhysicalInvites && r.CEP == "" {
		missing = append(missing, "cep")
	}
	if !r.ConsentBasic {
		missing = append(missing, "consentBasic")
	}
	return missing
}

// CanSubmit reports whether Submit would send a request right now.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step == LastStep && !f.sending && len(missingFields(f.record)) == 0
}

// Submit sends the record once and sets the status message from the outcome.
// The record is left as it was, successful or not.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.sending {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.step != LastStep {
		f.mu.Unlock()
		return ErrNotOnFinalStep
	}
	if len(missingFields(f.record)) > 0 {
		f.mu.Unlock()
		return ErrIncomplete
	}
	f.sending = true
	f.status = ""
	record := f.record.clone()
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, record)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sending = false
	if err != nil {
		f.status = StatusFailed
		return err
	}
	f.status = StatusSent
	return nil
}

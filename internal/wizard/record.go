package wizard

// Record is the registration accumulated across the form steps. Its JSON
// encoding is the body of POST /api/submit.
type Record struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	DOBConfirmed           bool     `json:"dobConfirmed"`
	AgeRange               string   `json:"ageRange"`
	WantsPhysicalInvites   bool     `json:"wantsPhysicalInvites"`
	CEP                    string   `json:"cep"`
	SocialNetwork          string   `json:"socialNetwork"`
	SocialHandle           string   `json:"socialHandle"`
	Preferences            []string `json:"preferences"`
	Freq                   string   `json:"freq"`
	ConsentBasic           bool     `json:"consentBasic"`
	ConsentPersonalization bool     `json:"consentPersonalization"`
	ConsentStats           bool     `json:"consentStats"`
	ConsentPartners        bool     `json:"consentPartners"`
}

func (r Record) clone() Record {
	out := r
	out.Preferences = append([]string{}, r.Preferences...)
	return out
}

// Change sets one field of a Record. Form.Update applies a batch of changes
// on top of the current values.
type Change func(*Record)

func Name(v string) Change          { return func(r *Record) { r.Name = v } }
func Email(v string) Change         { return func(r *Record) { r.Email = v } }
func Phone(v string) Change         { return func(r *Record) { r.Phone = v } }
func DOBConfirmed(v bool) Change    { return func(r *Record) { r.DOBConfirmed = v } }
func AgeRange(v string) Change      { return func(r *Record) { r.AgeRange = v } }
func CEP(v string) Change           { return func(r *Record) { r.CEP = v } }
func SocialNetwork(v string) Change { return func(r *Record) { r.SocialNetwork = v } }
func SocialHandle(v string) Change  { return func(r *Record) { r.SocialHandle = v } }
func Freq(v string) Change          { return func(r *Record) { r.Freq = v } }
func ConsentBasic(v bool) Change    { return func(r *Record) { r.ConsentBasic = v } }
func ConsentStats(v bool) Change    { return func(r *Record) { r.ConsentStats = v } }
func ConsentPartners(v bool) Change { return func(r *Record) { r.ConsentPartners = v } }

func WantsPhysicalInvites(v bool) Change {
	return func(r *Record) { r.WantsPhysicalInvites = v }
}

func ConsentPersonalization(v bool) Change {
	return func(r *Record) { r.ConsentPersonalization = v }
}

// Preferences replaces the whole selection.
func Preferences(v ...string) Change {
	return func(r *Record) { r.Preferences = append([]string{}, v...) }
}

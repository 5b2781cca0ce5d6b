package constants

// Allowed values for the enumerated registration fields, in display order.
// The submission validate tags must list the same values.
var (
	AgeRanges      = []string{"18-24", "25-34", "35-44", "45-54", "55+"}
	Preferences    = []string{"Eventos", "Cursos", "Promoções", "Notícias"}
	Frequencies    = []string{"Diária", "Semanal", "Mensal"}
	SocialNetworks = []string{"instagram", "facebook", "tiktok", "twitter"}
)

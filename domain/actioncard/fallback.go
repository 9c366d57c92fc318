package actioncard

// Fallback returns the generic card delivered when negotiation fails
// to produce a valid card within its turn bound. It recommends the
// lowest-risk actions that apply to any small merchant.
func Fallback(storeName string) *Card {
	subject := storeName
	if subject == "" {
		subject = "your store"
	}
	return &Card{
		Recommendations: []Recommendation{
			{
				Title: "Refresh your store profile",
				What:  "Bring the profile for " + subject + " up to date so future advice reflects current numbers.",
				Where: []string{"in store"},
				How: []string{
					"Review monthly sales, average ticket, and peak hours.",
					"Update anything that changed in the last quarter.",
				},
				Copy:     []string{"Accurate numbers make better advice."},
				KPI:      KPI{Target: "profile fields updated", Range: [2]string{"4", "8"}},
				Evidence: []string{},
			},
			{
				Title: "Start a simple repeat-visit incentive",
				What:  "Launch a stamp card or messaging coupon to lift repeat visits.",
				Where: []string{"counter", "messaging channel"},
				How: []string{
					"Offer one free item after ten visits.",
					"Promote the card at checkout for two weeks.",
				},
				Copy:     []string{"Ten visits, one on the house."},
				KPI:      KPI{Target: "repeat visit rate", Range: [2]string{"+3%", "+7%"}},
				Evidence: []string{},
			},
		},
	}
}

package topics

const (
	// Backoffice
	ReviewDecided = "backoffice_review_decided"
)

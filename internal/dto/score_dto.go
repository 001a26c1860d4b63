package dto

// Score report shapes. Everything here is derived on read; nothing is stored.

type ItemScoreDetailDTO struct {
	ItemID   uint   `json:"item_id"`
	Rating   *int   `json:"rating,omitempty"`
	Comment  string `json:"comment,omitempty"`
	MaxScore int    `json:"max_score"`
}

type DomainScoreDTO struct {
	DomainID    uint                 `json:"domain_id"`
	DomainName  string               `json:"domain_name"`
	Total       int                  `json:"total"`
	MaxPossible int                  `json:"max_possible"`
	Percentage  float64              `json:"percentage"`
	ItemScores  []ItemScoreDetailDTO `json:"item_scores,omitempty"`
}

type OverallRatingDTO struct {
	Rating     string  `json:"rating"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

type ScoreReportResponse struct {
	ObservationID uint             `json:"observation_id"`
	DomainScores  []DomainScoreDTO `json:"domain_scores"`
	GrandTotal    int              `json:"grand_total"`
	OverallRating OverallRatingDTO `json:"overall_rating"`
}

package service

import (
	"math"

	"github.com/teachscope/teachscope/internal/model"
)

// ScoreEntry is one observer judgment keyed by rubric item ID. A nil Rating
// means the item has not been rated yet.
type ScoreEntry struct {
	Rating  *int
	Comment string
}

// ItemScoreDetail carries one item's contribution inside a DomainScore.
type ItemScoreDetail struct {
	ItemID   uint
	Rating   *int
	Comment  string
	MaxScore int
}

// DomainScore is the derived aggregate for one rubric domain. It is
// recomputed on every read and never persisted.
type DomainScore struct {
	DomainID    uint
	DomainName  string
	Total       int
	MaxPossible int
	Percentage  float64
	ItemScores  []ItemScoreDetail
}

// OverallRating is the categorical label derived from the aggregate
// percentage via threshold bands.
type OverallRating struct {
	Rating     string
	Color      string
	Percentage float64
}

// RatingBand maps an inclusive percentage range to a rating label. Bands are
// evaluated in order; the first match wins.
type RatingBand struct {
	Min    float64
	Max    float64
	Rating string
	Color  string
}

// DefaultRatingBands is the rating table used when the caller supplies none.
var DefaultRatingBands = []RatingBand{
	{Min: 90, Max: 100, Rating: "Excellent", Color: "success"},
	{Min: 75, Max: 89, Rating: "Good", Color: "primary"},
	{Min: 60, Max: 74, Rating: "Average", Color: "warning"},
	{Min: 50, Max: 59, Rating: "Weak", Color: "warning"},
	{Min: 0, Max: 49, Rating: "Very Poor", Color: "danger"},
}

// overallRatingItemMax is the per-item maximum the overall rating uses. The
// overall computation has always assumed 4 points per rated item regardless
// of each item's actual MaxScore, while the per-domain computation reads the
// real MaxScore. Finalized historical observations were categorised under
// this assumption, so both behaviors are kept as-is and in separately named
// functions rather than unified.
const overallRatingItemMax = 4

// ValidationResult is the outcome of ValidateObservationData. Every rule is
// evaluated so the caller gets the complete error set in one pass.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// ObservationData is the slice of an observation the validation rules look at.
type ObservationData struct {
	TotalStudents   int
	PresentStudents int
	ItemScores      map[uint]ScoreEntry
}

// ScoringService is the pure scoring engine: no side effects, no I/O.
type ScoringService interface {
	CalculateDomainScores(domains []model.RubricDomain, itemScores map[uint]ScoreEntry) []DomainScore
	CalculateGrandTotal(domainScores []DomainScore) int
	CalculateOverallRating(domainScores []DomainScore, bands []RatingBand) OverallRating
	ValidateObservationData(data ObservationData) ValidationResult
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// CalculateDomainScores aggregates ratings per domain, in input domain order.
// An item contributes to Total and MaxPossible only when its rating is
// non-nil and non-zero; 0 means "Not Observed" and drops out of both the
// numerator and the denominator. Missing entries simply count as not rated.
func (s *scoringService) CalculateDomainScores(domains []model.RubricDomain, itemScores map[uint]ScoreEntry) []DomainScore {
	result := make([]DomainScore, 0, len(domains))
	for _, domain := range domains {
		ds := DomainScore{
			DomainID:   domain.ID,
			DomainName: domain.Name,
		}
		for _, item := range domain.Items {
			entry, ok := itemScores[item.ID]
			if !ok {
				continue
			}
			ds.ItemScores = append(ds.ItemScores, ItemScoreDetail{
				ItemID:   item.ID,
				Rating:   entry.Rating,
				Comment:  entry.Comment,
				MaxScore: item.MaxScore,
			})
			if entry.Rating == nil || *entry.Rating == 0 {
				continue
			}
			ds.Total += *entry.Rating
			ds.MaxPossible += item.MaxScore
		}
		if ds.MaxPossible > 0 {
			ds.Percentage = round2(100 * float64(ds.Total) / float64(ds.MaxPossible))
		}
		result = append(result, ds)
	}
	return result
}

// CalculateGrandTotal sums raw domain totals with no per-domain weighting. A
// domain with more items contributes proportionally more points.
func (s *scoringService) CalculateGrandTotal(domainScores []DomainScore) int {
	total := 0
	for _, ds := range domainScores {
		total += ds.Total
	}
	return total
}

// CalculateOverallRating turns domain aggregates into a categorical label.
// The denominator is ratedItemCount * overallRatingItemMax per domain, not
// the sum of item MaxScores, so the overall percentage can diverge from the
// per-domain percentages when an item's MaxScore is not 4.
func (s *scoringService) CalculateOverallRating(domainScores []DomainScore, bands []RatingBand) OverallRating {
	if len(domainScores) == 0 {
		return OverallRating{Rating: "No Data", Color: "gray", Percentage: 0}
	}
	if len(bands) == 0 {
		bands = DefaultRatingBands
	}

	grandTotal := s.CalculateGrandTotal(domainScores)
	totalMaxScore := 0
	for _, ds := range domainScores {
		totalMaxScore += ratedItemCount(ds) * overallRatingItemMax
	}

	percentage := 0.0
	if totalMaxScore > 0 {
		percentage = round2(100 * float64(grandTotal) / float64(totalMaxScore))
	}

	for _, band := range bands {
		if percentage >= band.Min && percentage <= band.Max {
			return OverallRating{Rating: band.Rating, Color: band.Color, Percentage: percentage}
		}
	}
	// Band maxima are integers but percentages carry two decimals, so values
	// like 89.99 land between bands. They belong to the first band whose
	// lower bound they clear (bands are ordered highest first).
	for _, band := range bands {
		if percentage >= band.Min {
			return OverallRating{Rating: band.Rating, Color: band.Color, Percentage: percentage}
		}
	}
	last := bands[len(bands)-1]
	return OverallRating{Rating: last.Rating, Color: last.Color, Percentage: percentage}
}

// ValidateObservationData runs every rule and collects all failures.
func (s *scoringService) ValidateObservationData(data ObservationData) ValidationResult {
	var errs []string
	if data.TotalStudents <= 0 {
		errs = append(errs, "total students must be greater than zero")
	}
	if data.PresentStudents < 0 {
		errs = append(errs, "present students cannot be negative")
	}
	if data.PresentStudents > data.TotalStudents {
		errs = append(errs, "present students cannot exceed total students")
	}
	scored := false
	for _, entry := range data.ItemScores {
		if entry.Rating != nil && *entry.Rating != 0 {
			scored = true
			break
		}
	}
	if !scored {
		errs = append(errs, "at least one item must be scored")
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ratedItemCount counts entries that carry a countable rating, matching the
// inclusion rule of CalculateDomainScores.
func ratedItemCount(ds DomainScore) int {
	count := 0
	for _, is := range ds.ItemScores {
		if is.Rating != nil && *is.Rating != 0 {
			count++
		}
	}
	return count
}

// round2 rounds half-up on the second decimal.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

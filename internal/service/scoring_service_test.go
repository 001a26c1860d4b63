package service

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jinzhu/copier"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
)

func intPtr(v int) *int { return &v }

func twoItemDomain(domainID, firstItemID uint) model.RubricDomain {
	return model.RubricDomain{
		ID:   domainID,
		Name: "Classroom Management",
		Items: []model.RubricItem{
			{ID: firstItemID, DomainID: domainID, ItemNumber: 1, OrderIndex: 1, MaxScore: 4},
			{ID: firstItemID + 1, DomainID: domainID, ItemNumber: 2, OrderIndex: 2, MaxScore: 4},
		},
	}
}

func TestCalculateDomainScoresIsPure(t *testing.T) {
	svc := NewScoringService()
	domains := []model.RubricDomain{twoItemDomain(1, 10)}
	scores := map[uint]ScoreEntry{
		10: {Rating: intPtr(3)},
		11: {Rating: intPtr(4)},
	}

	first := svc.CalculateDomainScores(domains, scores)
	second := svc.CalculateDomainScores(domains, scores)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different output:\n%+v\n%+v", first, second)
	}
}

func TestZeroRatingExcludedFromBothSides(t *testing.T) {
	svc := NewScoringService()
	domains := []model.RubricDomain{twoItemDomain(1, 10)}
	scores := map[uint]ScoreEntry{
		10: {Rating: intPtr(0)}, // Not Observed
		11: {Rating: intPtr(3)},
	}

	result := svc.CalculateDomainScores(domains, scores)
	if len(result) != 1 {
		t.Fatalf("expected 1 domain score, got %d", len(result))
	}
	ds := result[0]
	if ds.Total != 3 {
		t.Errorf("total = %d, want 3", ds.Total)
	}
	if ds.MaxPossible != 4 {
		t.Errorf("maxPossible = %d, want 4", ds.MaxPossible)
	}
	if ds.Percentage != 75.00 {
		t.Errorf("percentage = %v, want 75.00", ds.Percentage)
	}
}

func TestDomainWithNoRatedItemsYieldsZeroPercentage(t *testing.T) {
	svc := NewScoringService()
	domains := []model.RubricDomain{twoItemDomain(1, 10)}

	for name, scores := range map[string]map[uint]ScoreEntry{
		"empty":      {},
		"nil rating": {10: {Rating: nil, Comment: "revisit next term"}},
		"all zero":   {10: {Rating: intPtr(0)}, 11: {Rating: intPtr(0)}},
	} {
		result := svc.CalculateDomainScores(domains, scores)
		if result[0].Percentage != 0 {
			t.Errorf("%s: percentage = %v, want 0", name, result[0].Percentage)
		}
		if result[0].Total != 0 || result[0].MaxPossible != 0 {
			t.Errorf("%s: total/maxPossible = %d/%d, want 0/0", name, result[0].Total, result[0].MaxPossible)
		}
	}
}

func TestDomainScoreOutputOrderMatchesInput(t *testing.T) {
	svc := NewScoringService()
	domains := []model.RubricDomain{
		{ID: 3, Name: "Planning", Items: []model.RubricItem{{ID: 30, MaxScore: 4}}},
		{ID: 1, Name: "Instruction", Items: []model.RubricItem{{ID: 10, MaxScore: 4}}},
		{ID: 2, Name: "Environment", Items: []model.RubricItem{{ID: 20, MaxScore: 4}}},
	}
	result := svc.CalculateDomainScores(domains, map[uint]ScoreEntry{})
	want := []uint{3, 1, 2}
	for i, ds := range result {
		if ds.DomainID != want[i] {
			t.Fatalf("position %d: domain %d, want %d", i, ds.DomainID, want[i])
		}
	}
}

func TestCalculateGrandTotalIsUnweighted(t *testing.T) {
	svc := NewScoringService()
	scores := []DomainScore{
		{Total: 12, MaxPossible: 16},
		{Total: 5, MaxPossible: 32},
	}
	if got := svc.CalculateGrandTotal(scores); got != 17 {
		t.Errorf("grand total = %d, want 17", got)
	}
	if got := svc.CalculateGrandTotal(nil); got != 0 {
		t.Errorf("grand total of nil = %d, want 0", got)
	}
}

// domainScoreWithRatings builds a DomainScore the way CalculateDomainScores
// would, so the overall-rating denominator sees the rated item entries.
func domainScoreWithRatings(ratings ...int) DomainScore {
	ds := DomainScore{}
	for i, r := range ratings {
		rating := r
		ds.ItemScores = append(ds.ItemScores, ItemScoreDetail{ItemID: uint(i + 1), Rating: &rating, MaxScore: 4})
		if r != 0 {
			ds.Total += r
			ds.MaxPossible += 4
		}
	}
	return ds
}

func TestOverallRatingThresholdBoundaries(t *testing.T) {
	svc := NewScoringService()

	// Each case uses 100 rated items of max 4 so the percentage lands
	// exactly on the boundary under the hardcoded-4 denominator.
	cases := []struct {
		name       string
		totals     []int // per-item ratings across one domain
		wantRating string
		wantColor  string
	}{
		{"exactly 90 is Excellent", ratings(100, 360), "Excellent", "success"},
		{"just under 90 is Good", ratings(100, 359), "Good", "primary"}, // 89.75
		{"exactly 75 is Good", ratings(100, 300), "Good", "primary"},
		{"exactly 60 is Average", ratings(100, 240), "Average", "warning"},
		{"exactly 50 is Weak", ratings(100, 200), "Weak", "warning"},
		{"just under 50 is Very Poor", ratings(100, 199), "Very Poor", "danger"}, // 49.75
		{"zero is Very Poor", ratings(100, 100), "Very Poor", "danger"},          // 25.00
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds := domainScoreWithRatings(tc.totals...)
			got := svc.CalculateOverallRating([]DomainScore{ds}, nil)
			if got.Rating != tc.wantRating || got.Color != tc.wantColor {
				t.Errorf("rating = %s/%s (%.2f%%), want %s/%s", got.Rating, got.Color, got.Percentage, tc.wantRating, tc.wantColor)
			}
		})
	}
}

// ratings spreads total points over n items without any rating of zero.
func ratings(n, total int) []int {
	out := make([]int, n)
	base := total / n
	rem := total % n
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}

func TestOverallRatingNoDataShortCircuit(t *testing.T) {
	svc := NewScoringService()
	got := svc.CalculateOverallRating(nil, nil)
	want := OverallRating{Rating: "No Data", Color: "gray", Percentage: 0}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestOverallRatingHardcodedFourDenominator(t *testing.T) {
	svc := NewScoringService()
	// One item with MaxScore 5 rated 5. Domain percentage would be 100, but
	// the overall denominator counts 4 per rated item: 5/4 = 125%.
	five := 5
	ds := DomainScore{
		Total:       5,
		MaxPossible: 5,
		ItemScores:  []ItemScoreDetail{{ItemID: 1, Rating: &five, MaxScore: 5}},
	}
	got := svc.CalculateOverallRating([]DomainScore{ds}, nil)
	if got.Percentage != 125.00 {
		t.Errorf("percentage = %v, want 125.00", got.Percentage)
	}
}

func TestOverallRatingCustomBands(t *testing.T) {
	svc := NewScoringService()
	bands := []RatingBand{
		{Min: 50, Max: 100, Rating: "Pass", Color: "green"},
		{Min: 0, Max: 49, Rating: "Fail", Color: "red"},
	}
	ds := domainScoreWithRatings(4, 4) // 8/8 = 100%
	got := svc.CalculateOverallRating([]DomainScore{ds}, bands)
	if got.Rating != "Pass" {
		t.Errorf("rating = %s, want Pass", got.Rating)
	}
}

func TestValidateObservationDataCollectsAllErrors(t *testing.T) {
	svc := NewScoringService()
	result := svc.ValidateObservationData(ObservationData{
		TotalStudents:   -1,
		PresentStudents: -1,
		ItemScores:      map[uint]ScoreEntry{1: {Rating: intPtr(0)}},
	})
	// present(-1) == total(-1) so the exceed rule does not fire here; force it.
	if result.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 3 {
		t.Errorf("got %d errors (%v), want 3", len(result.Errors), result.Errors)
	}

	result = svc.ValidateObservationData(ObservationData{
		TotalStudents:   -1,
		PresentStudents: 5,
		ItemScores:      nil,
	})
	if len(result.Errors) != 3 {
		t.Errorf("got %d errors (%v), want 3", len(result.Errors), result.Errors)
	}

	// Every rule firing at once.
	result = svc.ValidateObservationData(ObservationData{
		TotalStudents:   -5,
		PresentStudents: -1,
		ItemScores:      nil,
	})
	if len(result.Errors) != 4 {
		t.Errorf("got %d errors (%v), want 4", len(result.Errors), result.Errors)
	}
}

func TestValidateObservationDataValidInput(t *testing.T) {
	svc := NewScoringService()
	result := svc.ValidateObservationData(ObservationData{
		TotalStudents:   30,
		PresentStudents: 28,
		ItemScores:      map[uint]ScoreEntry{1: {Rating: intPtr(3)}},
	})
	if !result.IsValid || len(result.Errors) != 0 {
		t.Errorf("expected valid result, got %+v", result)
	}
}

func TestScoreReportRoundTrip(t *testing.T) {
	svc := NewScoringService()
	domains := []model.RubricDomain{twoItemDomain(1, 10)}
	scores := map[uint]ScoreEntry{
		10: {Rating: intPtr(3), Comment: "good pacing"},
		11: {Rating: intPtr(4)},
	}
	domainScores := svc.CalculateDomainScores(domains, scores)
	overall := svc.CalculateOverallRating(domainScores, nil)

	report := dto.ScoreReportResponse{
		ObservationID: 7,
		GrandTotal:    svc.CalculateGrandTotal(domainScores),
		OverallRating: dto.OverallRatingDTO{Rating: overall.Rating, Color: overall.Color, Percentage: overall.Percentage},
	}
	report.DomainScores = make([]dto.DomainScoreDTO, len(domainScores))
	for i := range domainScores {
		copier.Copy(&report.DomainScores[i], &domainScores[i])
	}

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back dto.ScoreReportResponse
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(report, back) {
		t.Errorf("round trip changed the report:\nbefore %+v\nafter  %+v", report, back)
	}
}

package domain

import (
	"math"
	"time"
)

// AirlineRating is one passenger's review of an airline. Every category is
// optional; a submitted score must be 1..5.
type AirlineRating struct {
	ID                 int64     `json:"id"`
	AirlineID          int64     `json:"airline_id"`
	BoardingDeplaining *int      `json:"boarding_deplaining_rating,omitempty"`
	Crew               *int      `json:"crew_rating,omitempty"`
	Services           *int      `json:"services_rating,omitempty"`
	Entertainment      *int      `json:"entertainment_rating,omitempty"`
	WiFi               *int      `json:"wi_fi_rating,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func (r AirlineRating) Validate() error {
	for _, score := range []*int{r.BoardingDeplaining, r.Crew, r.Services, r.Entertainment, r.WiFi} {
		if score != nil && (*score < 1 || *score > 5) {
			return ErrInvalidRating
		}
	}
	return nil
}

// RatingAverages holds the mean score per category over all ratings of one
// airline. A nil category has no votes yet.
type RatingAverages struct {
	BoardingDeplaining *float64
	Crew               *float64
	Services           *float64
	Entertainment      *float64
	WiFi               *float64
}

// AirlineRatingSummary is the aggregate view of an airline's ratings:
// per-category averages plus the weighted overall score, all rounded to one
// decimal place.
type AirlineRatingSummary struct {
	OverallRating      float64  `json:"overall_rating"`
	BoardingDeplaining *float64 `json:"avg_boarding_deplaining,omitempty"`
	Crew               *float64 `json:"avg_crew,omitempty"`
	Services           *float64 `json:"avg_services,omitempty"`
	Entertainment      *float64 `json:"avg_entertainment,omitempty"`
	WiFi               *float64 `json:"avg_wi_fi,omitempty"`
}

// Category weights for the overall score. Crew quality dominates; boarding
// and wi-fi barely move the needle.
const (
	weightBoardingDeplaining = 0.05
	weightCrew               = 0.2
	weightServices           = 0.15
	weightEntertainment      = 0.1
	weightWiFi               = 0.05
)

// SummarizeRatings computes the weighted overall score from the per-category
// averages. Categories without votes are left out of both the summary and
// the weight normalization, so a single-category airline is still scored on
// the 1..5 scale.
func SummarizeRatings(avg RatingAverages) AirlineRatingSummary {
	categories := []struct {
		value  *float64
		weight float64
		out    **float64
	}{
		{avg.BoardingDeplaining, weightBoardingDeplaining, nil},
		{avg.Crew, weightCrew, nil},
		{avg.Services, weightServices, nil},
		{avg.Entertainment, weightEntertainment, nil},
		{avg.WiFi, weightWiFi, nil},
	}

	var summary AirlineRatingSummary
	categories[0].out = &summary.BoardingDeplaining
	categories[1].out = &summary.Crew
	categories[2].out = &summary.Services
	categories[3].out = &summary.Entertainment
	categories[4].out = &summary.WiFi

	totalScore := 0.0
	totalWeight := 0.0
	for _, c := range categories {
		if c.value == nil {
			continue
		}
		rounded := round1(*c.value)
		*c.out = &rounded

		totalScore += *c.value * c.weight
		totalWeight += c.weight
	}

	if totalWeight > 0 {
		summary.OverallRating = round1(totalScore / totalWeight)
	}
	return summary
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

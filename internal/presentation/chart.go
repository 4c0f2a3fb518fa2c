package presentation

import (
	"time"

	"SentimentDash/internal/domain/models"
)

// ChartPoint is one x-axis point of the sentiment chart. Ratios are in [0,1].
type ChartPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Count         int       `json:"count"`
	CountPositive int       `json:"countPositive"`
	CountNegative int       `json:"countNegative"`
	PositiveRatio float64   `json:"positiveRatio"`
	NegativeRatio float64   `json:"negativeRatio"`
	ActualPrice   float64   `json:"actualPrice"`
	Interpolated  bool      `json:"interpolated,omitempty"`
}

// Chart is the interpolated series handed to the chart component.
type Chart struct {
	IconURL string       `json:"iconUrl"`
	Points  []ChartPoint `json:"points"`
}

func isEmpty(s models.BucketSummary) bool {
	return s.Count == 0 && s.CountPositive == 0 && s.CountNegative == 0
}

// BuildChart converts summaries to chart points and fills interior empty
// buckets by linear interpolation between the nearest non-empty neighbours.
// Leading and trailing empty buckets are left as they are.
func BuildChart(in []models.BucketSummary) Chart {
	var c Chart
	if len(in) > 0 {
		c.IconURL = in[0].IconURL
	}
	c.Points = make([]ChartPoint, len(in))
	for i, s := range in {
		p := ChartPoint{
			Timestamp:     s.Timestamp,
			Count:         s.Count,
			CountPositive: s.CountPositive,
			CountNegative: s.CountNegative,
			ActualPrice:   s.ActualPrice,
		}
		if d := s.CountPositive + s.CountNegative; d > 0 {
			p.PositiveRatio = float64(s.CountPositive) / float64(d)
			p.NegativeRatio = float64(s.CountNegative) / float64(d)
		}
		c.Points[i] = p
	}

	prev := -1
	for i, s := range in {
		if isEmpty(s) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			fill(c.Points, prev, i)
		}
		prev = i
	}
	return c
}

// fill interpolates points strictly between lo and hi.
func fill(pts []ChartPoint, lo, hi int) {
	a, b := pts[lo], pts[hi]
	span := float64(hi - lo)
	for k := lo + 1; k < hi; k++ {
		t := float64(k-lo) / span
		pts[k].PositiveRatio = lerp(a.PositiveRatio, b.PositiveRatio, t)
		pts[k].NegativeRatio = lerp(a.NegativeRatio, b.NegativeRatio, t)
		if pts[k].ActualPrice == 0 {
			pts[k].ActualPrice = lerp(a.ActualPrice, b.ActualPrice, t)
		}
		pts[k].Interpolated = true
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

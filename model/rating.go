package model

// Rating classifies one metric value against the standard Core Web Vitals
// bands.
type Rating int

const (
	RatingUnknown Rating = iota
	RatingGood
	RatingNeedsWork
	RatingPoor
)

func (r Rating) String() string {
	switch r {
	case RatingGood:
		return "good"
	case RatingNeedsWork:
		return "needs-improvement"
	case RatingPoor:
		return "poor"
	}
	return "unknown"
}

func rate(v, good, poor float64) Rating {
	switch {
	case v > poor:
		return RatingPoor
	case v > good:
		return RatingNeedsWork
	default:
		return RatingGood
	}
}

// RateLCP rates a largest-contentful-paint time in milliseconds.
func RateLCP(ms float64) Rating { return rate(ms, 2500, 4000) }

// RateCLS rates a cumulative layout shift score.
func RateCLS(score float64) Rating { return rate(score, 0.1, 0.25) }

// RateFID rates a first-input delay in milliseconds.
func RateFID(ms float64) Rating { return rate(ms, 100, 300) }

// RateINP rates an interaction-to-next-paint duration in milliseconds.
func RateINP(ms float64) Rating { return rate(ms, 200, 500) }

// RateTTFB rates a time-to-first-byte in milliseconds.
func RateTTFB(ms float64) Rating { return rate(ms, 800, 1800) }

// Health derives the overall page health from the observed vitals:
// the worst rating among the metrics observed so far.
func (v Vitals) Health() HealthLevel {
	worst := RatingUnknown
	consider := func(r Rating) {
		if r > worst {
			worst = r
		}
	}
	if v.LCP != nil {
		consider(RateLCP(*v.LCP))
	}
	consider(RateCLS(v.CLS))
	if v.FID != nil {
		consider(RateFID(*v.FID))
	}
	if v.INP != nil {
		consider(RateINP(*v.INP))
	}
	if v.TTFB != nil {
		consider(RateTTFB(*v.TTFB))
	}
	switch worst {
	case RatingGood:
		return HealthGood
	case RatingNeedsWork:
		return HealthNeedsWork
	case RatingPoor:
		return HealthPoor
	}
	return HealthUnknown
}

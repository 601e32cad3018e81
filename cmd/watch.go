package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/webtopd/webtop/engine"
	"github.com/webtopd/webtop/model"
	"github.com/webtopd/webtop/util"
)

// ── ANSI color/style codes ──────────────────────────────────────────────────

const (
	R = "\033[0m" // reset
	B = "\033[1m" // bold
	D = "\033[2m" // dim

	FRed = "\033[31m"
	FYel = "\033[33m"
	FCyn = "\033[36m"

	FBRed = "\033[91m"
	FBGrn = "\033[92m"
	FBYel = "\033[93m"
	FBCyn = "\033[96m"
	FBWht = "\033[97m"

	BRed = "\033[41m"
	BGrn = "\033[42m"
	BYel = "\033[43m"
)

// ── Styling helpers ─────────────────────────────────────────────────────────

func cRating(r model.Rating) string {
	switch r {
	case model.RatingGood:
		return FBGrn + r.String() + R
	case model.RatingNeedsWork:
		return FBYel + r.String() + R
	case model.RatingPoor:
		return B + FBRed + r.String() + R
	}
	return D + r.String() + R
}

func cSeverity(sev string) string {
	switch sev {
	case "high":
		return B + FBRed + "HIGH" + R
	case "medium":
		return FBYel + "MED " + R
	default:
		return FYel + "LOW " + R
	}
}

func cHealth(h model.HealthLevel) string {
	switch h {
	case model.HealthGood:
		return " " + BGrn + B + FBWht + " GOOD " + R
	case model.HealthNeedsWork:
		return " " + BYel + B + FBWht + " NEEDS IMPROVEMENT " + R
	case model.HealthPoor:
		return " " + BRed + B + FBWht + " POOR " + R
	}
	return " " + D + "UNKNOWN" + R
}

func cMetric(name string, value *float64, format func(float64) string, rate func(float64) model.Rating) string {
	if value == nil {
		return fmt.Sprintf("  %s%-6s%s %s—%s", D, name, R, D, R)
	}
	v := *value
	return fmt.Sprintf("  %s%-6s%s %-10s %s", FBCyn, name, R, format(v), cRating(rate(v)))
}

// ── Section renderers ───────────────────────────────────────────────────────

func watchVitals(v model.Vitals) string {
	var sb strings.Builder
	sb.WriteString(B + FBWht + "CORE WEB VITALS" + R + "\n")
	sb.WriteString(cMetric("LCP", v.LCP, util.FmtMs, model.RateLCP) + "\n")
	cls := v.CLS
	sb.WriteString(cMetric("CLS", &cls, func(x float64) string { return fmt.Sprintf("%.3f", x) }, model.RateCLS) + "\n")
	sb.WriteString(cMetric("FID", v.FID, util.FmtMs, model.RateFID) + "\n")
	sb.WriteString(cMetric("INP", v.INP, util.FmtMs, model.RateINP) + "\n")
	sb.WriteString(cMetric("TTFB", v.TTFB, util.FmtMs, model.RateTTFB) + "\n")
	return sb.String()
}

func watchResources(snap *model.MetricsSnapshot) string {
	var sb strings.Builder
	sb.WriteString(B + FBWht + "PAGE RESOURCES" + R + "\n")
	sb.WriteString(fmt.Sprintf("  %sNodes%s       %d\n", FBCyn, R, snap.TotalNodes))
	sb.WriteString(fmt.Sprintf("  %sImages%s      %d\n", FBCyn, R, snap.TotalImages))
	sb.WriteString(fmt.Sprintf("  %sScripts%s     %d\n", FBCyn, R, snap.TotalScripts))
	sb.WriteString(fmt.Sprintf("  %sStylesheets%s %d\n", FBCyn, R, snap.TotalStylesheets))
	return sb.String()
}

func watchWarnings(snap *model.MetricsSnapshot) string {
	var sb strings.Builder
	sb.WriteString(B + FBWht + "WARNINGS" + R + "\n")
	if len(snap.Warnings) == 0 {
		sb.WriteString("  " + FBGrn + "none" + R + "\n")
		return sb.String()
	}
	for _, w := range snap.Warnings {
		sb.WriteString(fmt.Sprintf("  %s %s\n", cSeverity(w.Severity), w.Title))
		sb.WriteString(fmt.Sprintf("       %sfix: %s%s\n", D, w.Solution, R))
	}
	return sb.String()
}

func watchOverview(v model.Vitals, snap *model.MetricsSnapshot) string {
	var sb strings.Builder
	sb.WriteString(watchVitals(v))
	sb.WriteString("\n")
	sb.WriteString(watchResources(snap))
	sb.WriteString("\n")
	sb.WriteString(watchWarnings(snap))
	return sb.String()
}

// runWatch prints a section to the terminal on every tick until
// interrupted or the iteration count runs out.
func runWatch(ticker engine.Ticker, cfg Config) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	intervalTicker := time.NewTicker(cfg.Interval)
	defer intervalTicker.Stop()

	iterations := 0
	render := func() bool {
		vitals, snap := ticker.Tick()
		if snap == nil {
			return true
		}

		header := fmt.Sprintf("%swebtop%s %s  %s%s%s  %s%s%s",
			B+FCyn, R,
			cHealth(vitals.Health()),
			FBWht, util.ShortURL(snap.URL), R,
			D, time.Now().Format("15:04:05"), R)
		fmt.Println(header)
		fmt.Println()

		switch cfg.Section {
		case "vitals":
			fmt.Print(watchVitals(vitals))
		case "resources":
			fmt.Print(watchResources(snap))
		case "warnings":
			fmt.Print(watchWarnings(snap))
		default:
			fmt.Print(watchOverview(vitals, snap))
		}
		fmt.Println()

		iterations++
		return cfg.WatchCount == 0 || iterations < cfg.WatchCount
	}

	if !render() {
		return nil
	}
	for {
		select {
		case <-sigCh:
			return nil
		case <-intervalTicker.C:
			if !render() {
				return nil
			}
		}
	}
}

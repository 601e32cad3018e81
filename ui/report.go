package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/webtopd/webtop/model"
	"github.com/webtopd/webtop/util"
)

// RenderMarkdown produces a markdown report of one measurement.
func RenderMarkdown(v model.Vitals, snap *model.MetricsSnapshot) string {
	var sb strings.Builder
	sb.WriteString("# webtop Report\n\n")
	if snap != nil && snap.URL != "" {
		sb.WriteString(fmt.Sprintf("**URL**: %s\n\n", snap.URL))
	}
	sb.WriteString(fmt.Sprintf("**Generated**: %s\n\n", time.Now().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Health**: %s\n\n", v.Health()))

	sb.WriteString("## Core Web Vitals\n\n")
	sb.WriteString("| Metric | Value | Rating |\n")
	sb.WriteString("|--------|-------|--------|\n")
	writeRow := func(name string, value *float64, format func(float64) string, rate func(float64) model.Rating) {
		if value == nil {
			sb.WriteString(fmt.Sprintf("| %s | — | — |\n", name))
			return
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", name, format(*value), rate(*value)))
	}
	writeRow("LCP", v.LCP, util.FmtMs, model.RateLCP)
	cls := v.CLS
	writeRow("CLS", &cls, func(x float64) string { return fmt.Sprintf("%.3f", x) }, model.RateCLS)
	writeRow("FID", v.FID, util.FmtMs, model.RateFID)
	writeRow("INP", v.INP, util.FmtMs, model.RateINP)
	writeRow("TTFB", v.TTFB, util.FmtMs, model.RateTTFB)
	sb.WriteString("\n")

	if snap != nil {
		sb.WriteString("## Page Composition\n\n")
		sb.WriteString(fmt.Sprintf("- **DOM nodes**: %d\n", snap.TotalNodes))
		sb.WriteString(fmt.Sprintf("- **Images**: %d\n", snap.TotalImages))
		sb.WriteString(fmt.Sprintf("- **Scripts**: %d\n", snap.TotalScripts))
		sb.WriteString(fmt.Sprintf("- **Stylesheets**: %d\n", snap.TotalStylesheets))
		sb.WriteString("\n")

		if len(snap.Warnings) > 0 {
			sb.WriteString("## Warnings\n\n")
			sb.WriteString("| Severity | Finding | Suggested Fix |\n")
			sb.WriteString("|----------|---------|---------------|\n")
			for _, w := range snap.Warnings {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", w.Severity, w.Title, w.Solution))
			}
			sb.WriteString("\n")
		} else {
			sb.WriteString("## Warnings\n\nNone — page looks healthy.\n\n")
		}
	}

	sb.WriteString("---\n*Generated by webtop*\n")
	return sb.String()
}

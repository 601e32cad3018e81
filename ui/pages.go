package ui

import (
	"fmt"
	"strings"

	"github.com/webtopd/webtop/engine"
	"github.com/webtopd/webtop/model"
	"github.com/webtopd/webtop/util"
)

// vitalRow describes one metric line on the vitals displays.
type vitalRow struct {
	name   string
	value  *float64
	format func(float64) string
	rate   func(float64) model.Rating
	poor   float64
}

func vitalRows(v model.Vitals) []vitalRow {
	cls := v.CLS
	return []vitalRow{
		{"LCP", v.LCP, util.FmtMs, model.RateLCP, 4000},
		{"CLS", &cls, func(x float64) string { return fmt.Sprintf("%.3f", x) }, model.RateCLS, 0.25},
		{"FID", v.FID, util.FmtMs, model.RateFID, 300},
		{"INP", v.INP, util.FmtMs, model.RateINP, 500},
		{"TTFB", v.TTFB, util.FmtMs, model.RateTTFB, 1800},
	}
}

func renderOverview(v model.Vitals, snap *model.MetricsSnapshot, hist *engine.History, url string, width, height int) string {
	innerW := pageInnerW(width)
	var sb strings.Builder

	sb.WriteString(" " + titleStyle.Render("webtop") + "  " +
		valueStyle.Render(util.ShortURL(url)) + "  " +
		healthBadge(v.Health()) + "\n\n")

	// Vitals summary
	var lines []string
	for _, row := range vitalRows(v) {
		if row.value == nil {
			lines = append(lines, fmt.Sprintf("%s %s",
				styledPad(dimStyle.Render(row.name+":"), 8),
				dimStyle.Render("—")))
			continue
		}
		val := *row.value
		style := ratingStyle(row.rate(val))
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			styledPad(dimStyle.Render(row.name+":"), 8),
			styledPad(style.Render(row.format(val)), 10),
			metricBar(val, row.poor, 24),
			dimStyle.Render(row.rate(val).String())))
	}
	sb.WriteString(boxSection("CORE WEB VITALS", lines, innerW))

	// Page composition
	if snap != nil {
		comp := []string{
			fmt.Sprintf("%s %s    %s %s",
				styledPad(dimStyle.Render("Nodes:"), 10),
				styledPad(valueStyle.Render(fmt.Sprintf("%d", snap.TotalNodes)), 8),
				styledPad(dimStyle.Render("Images:"), 10),
				valueStyle.Render(fmt.Sprintf("%d", snap.TotalImages))),
			fmt.Sprintf("%s %s    %s %s",
				styledPad(dimStyle.Render("Scripts:"), 10),
				styledPad(valueStyle.Render(fmt.Sprintf("%d", snap.TotalScripts)), 8),
				styledPad(dimStyle.Render("Styles:"), 10),
				valueStyle.Render(fmt.Sprintf("%d", snap.TotalStylesheets))),
		}
		sb.WriteString(boxSection("PAGE", comp, innerW))

		// Top warnings
		var warnLines []string
		for i, w := range snap.Warnings {
			if i >= 4 {
				warnLines = append(warnLines, dimStyle.Render(
					fmt.Sprintf("… %d more (press 3)", len(snap.Warnings)-4)))
				break
			}
			warnLines = append(warnLines, fmt.Sprintf("%s %s",
				styledPad(severityStyle(w.Severity).Render(strings.ToUpper(w.Severity)), 8),
				valueStyle.Render(truncate(w.Title, innerW-12))))
		}
		if len(warnLines) == 0 {
			warnLines = []string{okStyle.Render("No warnings")}
		}
		sb.WriteString(boxSection("WARNINGS", warnLines, innerW))
	}

	// LCP trend
	if hist != nil && hist.Len() > 1 {
		series := hist.Series(func(v model.Vitals) (float64, bool) {
			if v.LCP == nil {
				return 0, false
			}
			return *v.LCP, true
		})
		if len(series) > 1 {
			sb.WriteString("\n " + dimStyle.Render("LCP trend ") +
				sparkline(series, innerW-16, 0, 4000) + "\n")
		}
	}

	return sb.String()
}

func renderVitalsPage(v model.Vitals, hist *engine.History, width, height int) string {
	innerW := pageInnerW(width)
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Core Web Vitals") + "\n\n")

	thresholds := map[string]string{
		"LCP":  "good ≤ 2.5s, poor > 4s",
		"CLS":  "good ≤ 0.1, poor > 0.25",
		"FID":  "good ≤ 100ms, poor > 300ms",
		"INP":  "good ≤ 200ms, poor > 500ms",
		"TTFB": "good ≤ 800ms, poor > 1.8s",
	}
	extract := map[string]func(model.Vitals) (float64, bool){
		"LCP": func(v model.Vitals) (float64, bool) {
			if v.LCP == nil {
				return 0, false
			}
			return *v.LCP, true
		},
		"CLS": func(v model.Vitals) (float64, bool) { return v.CLS, true },
		"FID": func(v model.Vitals) (float64, bool) {
			if v.FID == nil {
				return 0, false
			}
			return *v.FID, true
		},
		"INP": func(v model.Vitals) (float64, bool) {
			if v.INP == nil {
				return 0, false
			}
			return *v.INP, true
		},
		"TTFB": func(v model.Vitals) (float64, bool) {
			if v.TTFB == nil {
				return 0, false
			}
			return *v.TTFB, true
		},
	}

	for _, row := range vitalRows(v) {
		var lines []string
		if row.value == nil {
			lines = append(lines, dimStyle.Render("not observed yet"))
		} else {
			val := *row.value
			style := ratingStyle(row.rate(val))
			lines = append(lines, fmt.Sprintf("%s %s  %s",
				styledPad(style.Render(row.format(val)), 10),
				metricBar(val, row.poor, 32),
				dimStyle.Render(row.rate(val).String())))
			lines = append(lines, dimStyle.Render(thresholds[row.name]))
			if hist != nil && hist.Len() > 1 {
				series := hist.Series(extract[row.name])
				if len(series) > 1 {
					lines = append(lines, sparkline(series, innerW-12, 0, row.poor))
				}
			}
		}
		sb.WriteString(boxSection(row.name, lines, innerW))
	}

	return sb.String()
}

func renderResourcesPage(snap *model.MetricsSnapshot, width, height int) string {
	innerW := pageInnerW(width)
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Page Resources") + "\n\n")

	if snap == nil {
		sb.WriteString(dimStyle.Render(" No snapshot yet\n"))
		return sb.String()
	}

	total := snap.TotalImages + snap.TotalScripts + snap.TotalStylesheets
	rows := []struct {
		name  string
		count int
	}{
		{"Images", snap.TotalImages},
		{"Scripts", snap.TotalScripts},
		{"Stylesheets", snap.TotalStylesheets},
	}

	var lines []string
	for _, r := range rows {
		pct := 0.0
		if total > 0 {
			pct = float64(r.count) / float64(total) * 100
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			styledPad(dimStyle.Render(r.name+":"), 14),
			styledPad(valueStyle.Render(fmt.Sprintf("%d", r.count)), 6),
			metricBar(pct, 100, 28)))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s",
		styledPad(dimStyle.Render("DOM nodes:"), 14),
		valueStyle.Render(fmt.Sprintf("%d", snap.TotalNodes))))
	sb.WriteString(boxSection("RESOURCES", lines, innerW))

	return sb.String()
}

func renderWarningsPage(snap *model.MetricsSnapshot, width, height int) string {
	innerW := pageInnerW(width)
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Warnings") + "\n\n")

	if snap == nil || len(snap.Warnings) == 0 {
		sb.WriteString(" " + okStyle.Render("No warnings — page looks healthy") + "\n")
		return sb.String()
	}

	for _, w := range snap.Warnings {
		sb.WriteString(boxTop(innerW) + "\n")
		sb.WriteString(boxRow(fmt.Sprintf("%s %s",
			styledPad(severityStyle(w.Severity).Render(strings.ToUpper(w.Severity)), 8),
			valueStyle.Render(truncate(w.Title, innerW-10))), innerW) + "\n")
		sb.WriteString(boxRow(dimStyle.Render(truncate("fix: "+w.Solution, innerW)), innerW) + "\n")
		sb.WriteString(boxBot(innerW) + "\n")
	}

	return sb.String()
}

package engine

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/webtopd/webtop/model"
)

// MonitorConfig holds monitor-mode configuration.
type MonitorConfig struct {
	DataDir  string
	Interval time.Duration
	Exporter *MetricsExporter
}

// compactSummary is a minimal per-tick record for the rolling log.
type compactSummary struct {
	Timestamp time.Time `json:"ts"`
	URL       string    `json:"url,omitempty"`
	Health    string    `json:"health"`
	LCP       *float64  `json:"lcp,omitempty"`
	CLS       float64   `json:"cls"`
	FID       *float64  `json:"fid,omitempty"`
	INP       *float64  `json:"inp,omitempty"`
	TTFB      *float64  `json:"ttfb,omitempty"`
	Warnings  int       `json:"warnings"`
	HighSev   int       `json:"high_sev,omitempty"`
}

// RunMonitor ticks the engine on an interval and appends compact
// summaries to DataDir until interrupted. Full snapshots are written
// whenever page health degrades to POOR.
func RunMonitor(eng *Engine, cfg MonitorConfig) error {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pidPath := filepath.Join(cfg.DataDir, "monitor.pid")
	if err := os.WriteFile(pidPath, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0600); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	var ticker Ticker = eng
	if cfg.Exporter != nil {
		cfg.Exporter.Serve()
		defer cfg.Exporter.Close()
		ticker = NewInstrumentedTicker(ticker, cfg.Exporter)
	}

	summaryPath := filepath.Join(cfg.DataDir, "current.jsonl")
	incidentDir := filepath.Join(cfg.DataDir, "incidents")
	if err := os.MkdirAll(incidentDir, 0700); err != nil {
		log.Printf("create incident dir: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	intervalTicker := time.NewTicker(cfg.Interval)
	defer intervalTicker.Stop()

	log.Printf("webtop monitor started (pid=%d, interval=%s, url=%s)", os.Getpid(), cfg.Interval, eng.URL())

	prevHealth := model.HealthUnknown

	for {
		select {
		case <-sigCh:
			log.Printf("webtop monitor shutting down")
			return nil
		case <-intervalTicker.C:
			vitals, snap := ticker.Tick()
			if snap == nil {
				continue
			}

			health := vitals.Health()

			// Full snapshot on transition into POOR
			if health == model.HealthPoor && prevHealth != model.HealthPoor {
				snapPath := filepath.Join(incidentDir,
					fmt.Sprintf("incident-%s.json", snap.Timestamp.Format("2006-01-02T15-04-05")))
				saveIncidentSnapshot(snapPath, snap)
				log.Printf("AUTO-SNAPSHOT: %s (warnings=%d)", snapPath, len(snap.Warnings))
			}
			prevHealth = health

			high := 0
			for _, w := range snap.Warnings {
				if w.Severity == "high" {
					high++
				}
			}

			writeSummaryLine(summaryPath, compactSummary{
				Timestamp: snap.Timestamp,
				URL:       snap.URL,
				Health:    health.String(),
				LCP:       vitals.LCP,
				CLS:       vitals.CLS,
				FID:       vitals.FID,
				INP:       vitals.INP,
				TTFB:      vitals.TTFB,
				Warnings:  len(snap.Warnings),
				HighSev:   high,
			})
		}
	}
}

// saveIncidentSnapshot writes a full snapshot to a JSON file on health
// transitions.
func saveIncidentSnapshot(path string, snap *model.MetricsSnapshot) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Printf("marshal incident snapshot: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		log.Printf("write incident snapshot: %v", err)
	}
}

// writeSummaryLine appends a compact JSON line to the summary file.
// Rotates at 10MB.
func writeSummaryLine(path string, s compactSummary) {
	if info, err := os.Stat(path); err == nil && info.Size() > 10*1024*1024 {
		_ = os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_ = json.NewEncoder(f).Encode(s)
}

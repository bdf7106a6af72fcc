// Command gapscan turns gap-detection scan CSV exports into an HTML chart
// report, supplemental PNG figures and a markdown comparison table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gapsense-data/gapscan.report/internal/config"
	"github.com/gapsense-data/gapscan.report/internal/fsutil"
	"github.com/gapsense-data/gapscan.report/internal/report"
	"github.com/gapsense-data/gapscan.report/internal/scan"
	"github.com/gapsense-data/gapscan.report/internal/security"
	"github.com/gapsense-data/gapscan.report/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to report config JSON (defaults applied when empty)")
	scanFile    = flag.String("file", "", "Analyse a single scan CSV instead of the configured experiments")
	dataDir     = flag.String("data-dir", "", "Override the scan data directory")
	outDir      = flag.String("out", "", "Override the base output directory")
	noFigures   = flag.Bool("no-figures", false, "Skip the supplemental PNG figures")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("gapscan %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.EmptyReportConfig()
	if *configPath != "" {
		loaded, err := config.LoadReportConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("gapscan: %v", err)
	}
}

func run(ctx context.Context, cfg *config.ReportConfig) error {
	dir := cfg.GetDataDir()
	if *dataDir != "" {
		dir = *dataDir
	}
	base := cfg.GetOutputDir()
	if *outDir != "" {
		base = *outDir
	}

	experiments := cfg.Experiments
	if *scanFile != "" {
		experiments = []config.Experiment{{File: *scanFile, Title: experimentTitle(*scanFile)}}
	}
	if len(experiments) == 0 {
		return fmt.Errorf("nothing to analyse: no -file flag and no experiments configured")
	}

	fs := fsutil.OSFileSystem{}
	outputDir := makeOutputDir(base, time.Now())
	if err := fs.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	runID := uuid.NewString()
	log.Printf("run %s: %d experiment(s), output %s", runID, len(experiments), outputDir)

	loader := &scan.Loader{FS: fs, Comma: cfg.GetDelimiter()}
	store := scan.NewStore()

	failures := 0
	for _, exp := range experiments {
		log.Printf("processing: %s", exp.Title)

		path := filepath.Join(dir, exp.File)
		if err := security.ValidatePathWithinDirectory(path, dir); err != nil {
			log.Printf("error processing %s: %v", exp.File, err)
			failures++
			continue
		}

		gen := store.Begin()
		res := loader.Load(ctx, path)
		store.Apply(gen, res)

		// One bad file must not abort the batch.
		if !res.OK() {
			log.Printf("error processing %s: %v", exp.File, res.Err)
			failures++
			continue
		}

		if err := writeOutputs(fs, outputDir, runID, cfg, exp, res); err != nil {
			log.Printf("error writing outputs for %s: %v", exp.File, err)
			failures++
			continue
		}

		s := res.Summary
		log.Printf("%s: scans=%d gaps=%d avg_confidence=%.3f", exp.File, s.TotalScans, s.GapsDetected, s.AvgConfidence)
	}

	if failures == len(experiments) {
		return fmt.Errorf("all %d experiment(s) failed", failures)
	}
	if failures > 0 {
		log.Printf("completed with %d failure(s)", failures)
	}
	return nil
}

func writeOutputs(fs fsutil.FileSystem, outputDir, runID string, cfg *config.ReportConfig, exp config.Experiment, res scan.LoadResult) error {
	prefix := outputPrefix(exp.Title, exp.File)

	var html strings.Builder
	if err := report.RenderReportPage(&html, exp.Title, res.Records); err != nil {
		return err
	}
	htmlPath := filepath.Join(outputDir, prefix+".html")
	if err := fs.WriteFile(htmlPath, []byte(html.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}

	if !*noFigures {
		figs := &report.Figures{OutputDir: outputDir, Window: cfg.GetRollingWindow()}
		if _, err := figs.Generate(prefix, res.Records, res.Summary); err != nil {
			return err
		}
	}

	var md strings.Builder
	err := report.WriteComparison(&md, report.Comparison{
		Title:       comparisonTitle(exp),
		RunID:       runID,
		SystemLabel: cfg.GetSystemLabel(),
		Summary:     res.Summary,
		Competitors: competitors(cfg),
	})
	if err != nil {
		return err
	}
	mdPath := filepath.Join(outputDir, prefix+"_comparison.md")
	if err := fs.WriteFile(mdPath, []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}
	return nil
}

func competitors(cfg *config.ReportConfig) []report.Competitor {
	out := make([]report.Competitor, 0, len(cfg.Competitors))
	for _, c := range cfg.Competitors {
		out = append(out, report.Competitor{
			Name:          c.Name,
			Precision:     c.Precision,
			Recall:        c.Recall,
			F1:            c.F1,
			AvgConfidence: c.AvgConfidence,
		})
	}
	return out
}

// makeOutputDir returns a timestamped run directory under base, matching
// the exporter's analysis_results_<yyyymmdd_hhmm> convention.
func makeOutputDir(base string, t time.Time) string {
	return filepath.Join(base, "analysis_results_"+t.Format("20060102_1504"))
}

// outputPrefix derives per-experiment output names. Titles of the form
// "Figure 4a: ..." keep their figure number as the prefix; otherwise the
// scan file's base name is used alone.
func outputPrefix(title, file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if num, _, ok := strings.Cut(title, ":"); ok {
		num = strings.TrimSpace(num)
		if num != "" {
			return num + "_" + base
		}
	}
	return base
}

// experimentTitle is the fallback title when analysing a bare -file.
func experimentTitle(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func comparisonTitle(exp config.Experiment) string {
	if exp.Subtitle != "" {
		return exp.Title + " - " + exp.Subtitle
	}
	if exp.Title != "" {
		return exp.Title
	}
	return ""
}

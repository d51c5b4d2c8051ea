package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"resume-check/internal/shared/config"
	"resume-check/report/model"
	"resume-check/report/render"
)

type renderOptions struct {
	inPath     string
	outPath    string
	layoutPath string
	fileName   string
	generated  string
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report JSON file (or the sample report) to PDF",
		Long:  "Renders an AnalysisReport JSON document to a paginated PDF. Without --in the built-in sample report is used, and its JSON is written next to the PDF.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "Path to AnalysisReport JSON (default: sample report)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "./out/"+render.FileName, "Output PDF path")
	cmd.Flags().StringVarP(&opts.layoutPath, "layout", "l", "", "YAML layout override")
	cmd.Flags().StringVar(&opts.fileName, "file-name", "resume.pdf", "File name shown on the sample report")
	cmd.Flags().StringVar(&opts.generated, "generated-at", "", "RFC 3339 timestamp for reproducible output")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	layout, err := config.LoadLayout(opts.layoutPath, render.DefaultConfig())
	if err != nil {
		return err
	}

	report, fromSample, err := loadReport(opts.inPath, opts.fileName)
	if err != nil {
		return err
	}
	if err := report.Validate(); err != nil {
		return err
	}

	renderer := render.NewRenderer(layout)
	if opts.generated != "" {
		at, err := time.Parse(time.RFC3339, opts.generated)
		if err != nil {
			return fmt.Errorf("parse --generated-at: %w", err)
		}
		renderer.Now = func() time.Time { return at }
	}

	doc, err := renderer.RenderDocument(report)
	if err != nil {
		return err
	}

	dir := filepath.Dir(opts.outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(opts.outPath, doc.Bytes, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	if fromSample {
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "sample_report.json"), payload, 0o644); err != nil {
			return fmt.Errorf("write sample json: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK: wrote %s (%d page(s), %d bytes)\n", opts.outPath, doc.Pages, len(doc.Bytes))
	return nil
}

func loadReport(path, fileName string) (model.AnalysisReport, bool, error) {
	if path == "" {
		return model.Sample(fileName), true, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AnalysisReport{}, false, fmt.Errorf("read report: %w", err)
	}
	var report model.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return model.AnalysisReport{}, false, fmt.Errorf("decode report %s: %w", path, err)
	}
	return report, false, nil
}

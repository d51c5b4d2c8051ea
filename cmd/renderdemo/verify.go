package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-check/internal/shared/config"
	"resume-check/report/inspect"
	"resume-check/report/render"
)

type verifyOptions struct {
	layoutPath string
	pages      int
	contains   []string
}

func newVerifyCmd() *cobra.Command {
	opts := verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify <file.pdf>",
		Short: "Re-open a rendered report and check its pages and text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.layoutPath, "layout", "l", "", "YAML layout override the file was rendered with")
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "Expected page count (0 skips the check)")
	cmd.Flags().StringSliceVar(&opts.contains, "contains", nil, "Additional text the report must contain")
	return cmd
}

func runVerify(cmd *cobra.Command, path string, opts verifyOptions) error {
	layout, err := config.LoadLayout(opts.layoutPath, render.DefaultConfig())
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}

	needles := append([]string{layout.Title}, opts.contains...)
	if layout.FooterText != "" {
		needles = append(needles, layout.FooterText)
	}
	summary, err := inspect.Expect(cmd.Context(), data, opts.pages, needles...)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}

	footerPage := 0
	for i, page := range summary.Pages {
		if layout.FooterText != "" && strings.Contains(page, layout.FooterText) {
			footerPage = i + 1
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s has %d page(s), footer on page %d\n", path, summary.PageCount(), footerPage)
	return nil
}

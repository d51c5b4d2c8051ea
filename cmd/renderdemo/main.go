// Command renderdemo renders analysis reports to PDF and checks rendered files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "renderdemo",
		Short:         "Render and verify resume analysis PDF reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newVerifyCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "renderdemo: %v\n", err)
		os.Exit(1)
	}
}

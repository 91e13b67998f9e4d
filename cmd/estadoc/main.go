// Package main is the entry point for the estadoc CLI.
// It runs the document processing pipeline locally, without the API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/probatech/estadoc/internal/fixtures"
	"github.com/probatech/estadoc/pkg/domain"
	"github.com/probatech/estadoc/pkg/logging"
	"github.com/probatech/estadoc/pkg/pipeline"
	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "estadoc",
		Short: "Estate document classification and compliance CLI",
		Long: `Classify estate-related documents into a fixed taxonomy and validate them
against category-specific compliance rules.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit results as JSON")

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newTaxonomyCmd())

	return rootCmd
}

func newProcessor(cmd *cobra.Command) *pipeline.Processor {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.Config{Level: level, Pretty: true})
	slog.SetDefault(logger)

	return pipeline.NewProcessor(nil, nil, pipeline.DefaultLimits(), logger, telemetry.NewMetrics())
}

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Process a single document from a file or --text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _ := cmd.Flags().GetString("text")
			id, _ := cmd.Flags().GetString("id")

			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read document: %w", err)
				}
				text = string(data)
			}
			if text == "" {
				return fmt.Errorf("provide a document file or --text")
			}
			if id == "" {
				id = "doc-" + uuid.NewString()[:8]
			}

			processor := newProcessor(cmd)
			result, err := processor.Process(context.Background(), domain.Payload{
				DocumentID: id,
				Content:    text,
			})
			if err != nil {
				return err
			}

			return printResult(cmd, result)
		},
	}

	cmd.Flags().String("text", "", "Document text to process")
	cmd.Flags().String("id", "", "Document identifier (generated when omitted)")
	return cmd
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Process the bundled demonstration corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			processor := newProcessor(cmd)

			for _, sample := range fixtures.All() {
				result, err := processor.Process(context.Background(), sample.Payload)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: rejected: %v\n\n", sample.Key, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n", sample.Key)
				if err := printResult(cmd, result); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func newTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "List the document category taxonomy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(taxonomy.Categories())
			}
			for _, c := range taxonomy.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", c.Code, c.Name)
			}
			return nil
		},
	}
}

func printResult(cmd *cobra.Command, result *domain.ProcessingResult) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	compliance := "INVALID"
	if result.Compliance.Valid {
		compliance = "valid"
	}

	fmt.Fprintf(out, "Document ID:  %s\n", result.DocumentID)
	fmt.Fprintf(out, "Status:       %s\n", result.Status)
	fmt.Fprintf(out, "Category:     %s (%s)\n", result.Classification.CategoryName, result.Classification.CategoryCode)
	fmt.Fprintf(out, "Confidence:   %.2f\n", result.Classification.Confidence)
	fmt.Fprintf(out, "Compliance:   %s\n", compliance)
	fmt.Fprintf(out, "Reason:       %s\n", result.Compliance.Reason)
	if len(result.Compliance.ChecksPerformed) > 0 {
		fmt.Fprintf(out, "Checks:       %s\n", strings.Join(result.Compliance.ChecksPerformed, ", "))
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "Errors:       %s\n", strings.Join(result.Errors, "; "))
	}
	return nil
}

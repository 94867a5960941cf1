package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/report"
)

var (
	reportOutput string
	reportServe  string
)

var reportCmd = &cobra.Command{
	Use:   "report TOUR-ID",
	Short: "Build a printable HTML itinerary for a tour",
	Example: paragraph("wayfarer report 7c9a2d80-8f2e-4f5d-9b1a-3c6e1d4b5a90 -o tour.html\n" +
		"wayfarer report 7c9a2d80-8f2e-4f5d-9b1a-3c6e1d4b5a90 --serve localhost:8080"),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, stops, err := fetchTour(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if reportServe != "" {
			fmt.Println("Previewing report on http://" + reportServe)
			//nolint:gosec
			if err := http.ListenAndServe(reportServe, report.Handler(t, stops)); err != nil {
				return fmt.Errorf("preview server failed: %w", err)
			}
			return nil
		}

		out := os.Stdout
		if reportOutput != "" {
			f, err := os.Create(reportOutput)
			if err != nil {
				return fmt.Errorf("unable to create output file: %w", err)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		if err := report.Write(out, t, stops); err != nil {
			return fmt.Errorf("unable to build report: %w", err)
		}
		if reportOutput != "" {
			fmt.Println("Wrote report to:", reportOutput)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write to file instead of stdout")
	reportCmd.Flags().StringVar(&reportServe, "serve", "", "serve the report for preview on the given address")
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/tour"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:     "export TOUR-ID",
	Short:   "Export a tour and its stops as YAML",
	Example: paragraph("wayfarer export 7c9a2d80-8f2e-4f5d-9b1a-3c6e1d4b5a90 -o tour.yml"),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, stops, err := fetchTour(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("unable to create output file: %w", err)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		if err := tour.WriteYAML(out, t, stops); err != nil {
			return fmt.Errorf("unable to write export: %w", err)
		}
		if exportOutput != "" {
			fmt.Println("Wrote tour to:", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

// fetchTour loads one tour and its ordered stops from the backend.
func fetchTour(ctx context.Context, id string) (tour.Tour, []tour.Stop, error) {
	appCfg, err := loadAppConfig()
	if err != nil {
		return tour.Tour{}, nil, err
	}
	client, err := backendClient(appCfg)
	if err != nil {
		return tour.Tour{}, nil, err
	}

	t, err := client.GetTour(ctx, id)
	if err != nil {
		return tour.Tour{}, nil, fmt.Errorf("unable to fetch tour: %w", err)
	}
	stops, err := client.ListStops(ctx, t.ID)
	if err != nil {
		return tour.Tour{}, nil, fmt.Errorf("unable to fetch stops: %w", err)
	}
	return t, stops, nil
}

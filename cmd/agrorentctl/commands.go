package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"agrorent-backend/internal/app"
	"agrorent-backend/internal/config"
	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/geo"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/utils"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "agrorentctl",
		Short: "Operator tooling for the AgroRent backend",
		Long:  `Quote bookings, measure distances and run maintenance against an AgroRent store.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger.InitializeWithWriter(cmd.ErrOrStderr(), level, "text")
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config/config.dev.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		newQuoteCmd(),
		newDistanceCmd(),
		newNearbyCmd(opts),
		newRecomputeRatingsCmd(opts),
	)
	return rootCmd
}

func newQuoteCmd() *cobra.Command {
	var (
		start, end            string
		hourly, daily, weekly float64
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a rental window",
		Long:  `Pick the pricing tier for a window and print the total cost. Rates of 0 are treated as absent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			to, err := time.Parse(time.RFC3339, end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			rates := domain.RateSheet{Hourly: optional(hourly), Daily: optional(daily), Weekly: optional(weekly)}
			if !rates.Any() {
				return fmt.Errorf("at least one of --hourly, --daily or --weekly is required")
			}

			q, err := utils.CalculateBookingCost(from, to, rates)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pricing: %s\n", q.PricingType)
			fmt.Fprintf(out, "Hours:   %d\n", q.Hours)
			fmt.Fprintf(out, "Total:   %.2f\n", q.TotalCost)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start time (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "End time (RFC3339)")
	cmd.Flags().Float64Var(&hourly, "hourly", 0, "Hourly rate")
	cmd.Flags().Float64Var(&daily, "daily", 0, "Daily rate")
	cmd.Flags().Float64Var(&weekly, "weekly", 0, "Weekly rate")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func optional(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <lat,lon> <lat,lon>",
		Short: "Great-circle distance between two points in km",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			b, err := parsePoint(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f km\n", geo.DistanceKm(a.Lat, a.Lon, b.Lat, b.Lon))
			return nil
		},
	}
}

func parsePoint(s string) (domain.GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.GeoPoint{}, fmt.Errorf("point %q must be lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("invalid latitude in %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("invalid longitude in %q", s)
	}
	p := domain.GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("point %q is out of range", s)
	}
	return p, nil
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}

func newNearbyCmd(opts *rootOptions) *cobra.Command {
	var lat, lon, radius float64
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List available equipment around a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.Equipment.GetNearbyEquipment(cmd.Context(), lat, lon, radius)
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "Search radius in km (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func printResults(out io.Writer, results []domain.EquipmentResult) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDISTANCE_KM\tRATING")
	for _, r := range results {
		dist := "-"
		if r.DistanceKm != nil {
			dist = strconv.FormatFloat(*r.DistanceKm, 'f', 1, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\n", r.ID, r.Name, r.Category, dist, r.Rating)
	}
	w.Flush()
}

func newRecomputeRatingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute-ratings",
		Short: "Re-derive every equipment and user rating from bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Ratings.RecomputeAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "equipment=%d users=%d failed=%d\n", report.Equipment, report.Users, report.Failed)
			if report.Failed > 0 {
				return fmt.Errorf("%d ratings could not be recomputed", report.Failed)
			}
			return nil
		},
	}
}

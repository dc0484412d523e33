package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/analysis"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/dataset"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/figure"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/interpolate"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/report"
)

const defaultLogLevel = "warning"

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "pfsplot",
		Short:         "Plotting helpers for PFS prediction curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrapf(err, "parsing log level failed")
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log", "l", defaultLogLevel, "Log level: debug, info, warn, error, fatal, panic")

	rootCmd.AddCommand(
		newInspectCmd(),
		newFigsizeCmd(),
		newColorsCmd(),
		newCurvesCmd(),
		newReportCmd(),
	)
	return rootCmd
}

func newInspectCmd() *cobra.Command {
	var (
		dataDir      string
		includeSuppl bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the Cox PH test results",
		Long:  `The inspect command imports cox_ph_test.csv and prints its row count, columns and rows per figure.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApp(cmd.OutOrStdout()).Inspect(dataDir, includeSuppl)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", dataset.DefaultInputDir, "Directory holding cox_ph_test.csv")
	cmd.Flags().BoolVar(&includeSuppl, "include-suppl", false, "Include supplementary combinations")
	return cmd
}

func newFigsizeCmd() *cobra.Command {
	var (
		scale                       float64
		rows, cols                  int
		spacingWidth, spacingHeight float64
	)
	cmd := &cobra.Command{
		Use:   "figsize",
		Short: "Print the width and height of a subplot grid",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			NewApp(cmd.OutOrStdout()).Figsize(scale, rows, cols, spacingWidth, spacingHeight)
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 1, "Figure scale")
	cmd.Flags().IntVar(&rows, "rows", 1, "Number of subplot rows")
	cmd.Flags().IntVar(&cols, "cols", 1, "Number of subplot columns")
	cmd.Flags().Float64Var(&spacingWidth, "spacing-width", figure.DefaultSpacingWidthScale, "Horizontal gap between subplots, as a fraction of scale")
	cmd.Flags().Float64Var(&spacingHeight, "spacing-height", figure.DefaultSpacingHeightScale, "Vertical gap between subplots, as a fraction of scale")
	return cmd
}

func newColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Print the trial-arm colors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			NewApp(cmd.OutOrStdout()).Colors()
		},
	}
}

func addCurveFlags(cmd *cobra.Command, opts *curveOptions) {
	cmd.Flags().StringVar(&opts.Kind, "kind", interpolate.DefaultKind.String(), "Interpolation kind: zero, previous, next, nearest, linear, cubic, akima, monotone")
	cmd.Flags().IntVar(&opts.Cols, "cols", 3, "Maximum panels per row")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "Figure scale")
	cmd.Flags().IntVar(&opts.Samples, "samples", report.DefaultSamples, "Points per smooth curve")
	cmd.Flags().StringVar(&opts.ArmColumn, "arm-column", analysis.DefaultArmColumn, "Column naming the trial arm of each row")
	cmd.Flags().Float64SliceVar(&opts.Landmarks, "landmark", nil, "Times at which to report interpolated survival")
}

func newCurvesCmd() *cobra.Command {
	var (
		opts    curveOptions
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "curves CSV...",
		Short: "Render survival curves as a subplot grid",
		Long:  `The curves command draws one panel per CSV file (columns Time, Survival and optionally Arm) on a figure sized for the grid.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApp(cmd.OutOrStdout()).Curves(args, opts, outPath)
		},
	}
	addCurveFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Format, "format", "png", "Image format: png, svg, pdf, eps, jpg, tif")
	cmd.Flags().StringVarP(&outPath, "output", "o", "curves.png", "Output file")
	return cmd
}

func newReportCmd() *cobra.Command {
	var (
		opts         curveOptions
		dataDir      string
		includeSuppl bool
		pdfPath      string
	)
	cmd := &cobra.Command{
		Use:   "report CSV...",
		Short: "Build a PDF report of survival curves",
		Long:  `The report command renders the curve grid, per-arm summaries and, with --data-dir, an overview of the Cox PH test results into a PDF.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApp(cmd.OutOrStdout()).GenerateReport(args, opts, dataDir, includeSuppl, pdfPath)
		},
	}
	addCurveFlags(cmd, &opts)
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding cox_ph_test.csv; empty skips the overview")
	cmd.Flags().BoolVar(&includeSuppl, "include-suppl", false, "Note that supplementary combinations are part of the curves")
	cmd.Flags().StringVarP(&pdfPath, "output", "o", "report.pdf", "Output PDF file")
	return cmd
}

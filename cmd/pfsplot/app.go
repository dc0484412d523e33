package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/analysis"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/dataset"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/figure"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/interpolate"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/palette"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/report"
)

// App runs the pfsplot commands and prints results to out.
type App struct {
	out io.Writer
}

// NewApp creates an App writing to out.
func NewApp(out io.Writer) *App {
	return &App{out: out}
}

func (a *App) sendStatus(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// curveOptions configure curve rendering and summaries.
type curveOptions struct {
	Kind      string
	Cols      int
	Scale     float64
	Samples   int
	ArmColumn string
	Landmarks []float64
	Format    string
}

// coxOverview is the Cox PH test results as seen by both importers.
type coxOverview struct {
	Dir          string
	All, Primary *dataset.Table
	FigureCounts map[string]int
	FigureOrder  []string
}

func (a *App) importCox(dataDir string) (*coxOverview, error) {
	dir, all, err := dataset.ImportInputDataIncludeSupplFrom(dataDir)
	if err != nil {
		return nil, err
	}
	_, primary, err := dataset.ImportInputDataFrom(dataDir)
	if err != nil {
		return nil, err
	}
	counts, order, err := dataset.CountBy(all, dataset.FigureColumn)
	if err != nil {
		return nil, err
	}
	return &coxOverview{Dir: dir, All: all, Primary: primary, FigureCounts: counts, FigureOrder: order}, nil
}

// Inspect prints an overview of the Cox PH test results.
func (a *App) Inspect(dataDir string, includeSuppl bool) error {
	a.sendStatus("Importing %s", filepath.Join(dataDir, dataset.CoxPHFile))
	cox, err := a.importCox(dataDir)
	if err != nil {
		return err
	}
	table := cox.Primary
	if includeSuppl {
		table = cox.All
	}
	a.sendStatus("Imported %d rows (%d excluding supplementary)", cox.All.Len(), cox.Primary.Len())

	fmt.Fprintf(a.out, "dir:\t%s\n", cox.Dir)
	fmt.Fprintf(a.out, "rows:\t%d\n", table.Len())
	fmt.Fprintf(a.out, "columns:\t%s\n", strings.Join(table.Columns(), ", "))
	for _, tag := range cox.FigureOrder {
		if tag == dataset.SupplementaryTag && !includeSuppl {
			continue
		}
		fmt.Fprintf(a.out, "figure %s:\t%d\n", tag, cox.FigureCounts[tag])
	}
	return nil
}

// Figsize prints the figure size of a subplot grid.
func (a *App) Figsize(scale float64, rows, cols int, spacingWidth, spacingHeight float64) {
	size := figure.SetFigsize(scale, rows, cols, figure.WithSpacing(spacingWidth, spacingHeight))
	fmt.Fprintf(a.out, "%g %g\n", size.Width, size.Height)
}

// Colors prints the trial-arm palette.
func (a *App) Colors() {
	colors := palette.ModelColors()
	for _, label := range palette.Labels() {
		fmt.Fprintf(a.out, "%s\t%s\n", label, colors[label])
	}
}

type panel struct {
	title  string
	curves []analysis.ArmCurve
}

func (a *App) loadPanels(paths []string, armColumn string) ([]panel, error) {
	if len(paths) == 0 {
		return nil, errors.New("no curve files given")
	}
	panels := make([]panel, 0, len(paths))
	for _, path := range paths {
		a.sendStatus("Parsing: %s", path)
		table, err := dataset.ReadCSV(path)
		if err != nil {
			return nil, err
		}
		curves, err := analysis.SplitArms(table, armColumn)
		if err != nil {
			return nil, errors.Wrapf(err, "splitting arms of %s", path)
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		panels = append(panels, panel{title: title, curves: curves})
	}
	return panels, nil
}

// renderCurves draws one panel per curve file and summarizes every arm.
func (a *App) renderCurves(paths []string, opts curveOptions) ([]byte, figure.Size, *analysis.Results, error) {
	kind, err := interpolate.ParseKind(opts.Kind)
	if err != nil {
		return nil, figure.Size{}, nil, err
	}
	panels, err := a.loadPanels(paths, opts.ArmColumn)
	if err != nil {
		return nil, figure.Size{}, nil, err
	}

	plots := make([]*plot.Plot, 0, len(panels))
	results := analysis.NewResults()
	for _, pn := range panels {
		a.sendStatus("Plot: %s (%d arms)", pn.title, len(pn.curves))
		p, err := report.CreateCurvePanel(pn.curves, pn.title, kind, opts.Samples)
		if err != nil {
			return nil, figure.Size{}, nil, errors.Wrapf(err, "panel %s", pn.title)
		}
		plots = append(plots, p)

		res, err := analysis.SummarizeCurves(pn.curves, kind, opts.Landmarks)
		if err != nil {
			return nil, figure.Size{}, nil, errors.Wrapf(err, "panel %s", pn.title)
		}
		for _, s := range res.Summaries {
			if len(panels) > 1 {
				s.Arm = pn.title + ": " + s.Arm
			}
			results.Summaries = append(results.Summaries, s)
		}
		results.AnalysisErrors = append(results.AnalysisErrors, res.AnalysisErrors...)
	}
	for _, e := range results.AnalysisErrors {
		log.Warn(e)
	}

	img, size, err := report.RenderCurveGrid(plots, opts.Scale, opts.Cols, opts.Format)
	if err != nil {
		return nil, figure.Size{}, nil, err
	}
	a.sendStatus("Rendered %d panels at %.2f x %.2f in", len(plots), size.Width, size.Height)
	return img, size, results, nil
}

// Curves renders the curve grid to outPath.
func (a *App) Curves(paths []string, opts curveOptions, outPath string) error {
	img, _, results, err := a.renderCurves(paths, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return errors.Wrapf(err, "failed to save figure %s", outPath)
	}
	for _, s := range results.Summaries {
		fmt.Fprintf(a.out, "%s\tpoints=%d\tmedian=%g\n", s.Arm, s.NumPoints, s.MedianTime)
	}
	a.sendStatus("Figure saved: %s", outPath)
	return nil
}

// GenerateReport summarizes the Cox PH results and the curves into a PDF.
func (a *App) GenerateReport(paths []string, opts curveOptions, dataDir string, includeSuppl bool, pdfPath string) error {
	opts.Format = "png"
	img, size, results, err := a.renderCurves(paths, opts)
	if err != nil {
		return err
	}

	in := report.ReportInput{
		InterpolatedBy: opts.Kind,
		Results:        results,
		Landmarks:      opts.Landmarks,
		GridImage:      img,
		GridSize:       size,
		IncludesSuppl:  includeSuppl,
	}

	if dataDir != "" {
		cox, err := a.importCox(dataDir)
		if err != nil {
			return err
		}
		in.InputPath = filepath.Join(cox.Dir, dataset.CoxPHFile)
		in.TotalRows = cox.All.Len()
		in.PrimaryRows = cox.Primary.Len()
		in.FigureCounts = cox.FigureCounts
		in.FigureOrder = cox.FigureOrder
	}

	if len(opts.Landmarks) > 0 && len(results.Summaries) > 0 {
		heatmap, err := report.CreateLandmarkHeatmap(results, "Survival at Landmark Times")
		if err != nil {
			a.sendStatus("Error generating landmark heatmap: %v", err)
		} else {
			in.HeatmapPNG = heatmap
		}
	}

	a.sendStatus("Generating PDF: %s...", pdfPath)
	if err := report.BuildPDFReport(pdfPath, in); err != nil {
		return errors.Wrap(err, "error generating PDF report")
	}
	a.sendStatus("PDF report successfully generated: %s", pdfPath)
	return nil
}

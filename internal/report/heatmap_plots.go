package report

import (
	"bytes"
	"fmt"
	"image/color"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/analysis"
)

// landmarkGrid is a plotter.GridXYZ of arm (row) by landmark (column).
type landmarkGrid struct {
	z    [][]float64
	cols int
}

func (g landmarkGrid) Dims() (c, r int)   { return g.cols, len(g.z) }
func (g landmarkGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g landmarkGrid) X(c int) float64    { return float64(c) }
func (g landmarkGrid) Y(r int) float64    { return float64(r) }

// colorList is a fixed palette.Palette.
type colorList []color.Color

func (l colorList) Colors() []color.Color { return l }

// survivalColors runs red (low survival) through yellow to green (high survival).
var survivalColors = colorList{
	color.RGBA{R: 255, G: 0, B: 0, A: 255},
	color.RGBA{R: 255, G: 165, B: 0, A: 255},
	color.RGBA{R: 255, G: 255, B: 0, A: 255},
	color.RGBA{R: 0, G: 255, B: 0, A: 255},
	color.RGBA{R: 0, G: 100, B: 0, A: 255},
}

// newSurvivalHeatMap maps survival in [0, 1] onto survivalColors. Values
// below 0 or above 1, which extrapolating kinds can produce, take the end
// colors.
func newSurvivalHeatMap(grid plotter.GridXYZ) *plotter.HeatMap {
	var pal palette.Palette = survivalColors
	hm := plotter.NewHeatMap(grid, pal)
	hm.Min = 0
	hm.Max = 1
	hm.NaN = color.Gray{Y: 200}
	hm.Underflow = survivalColors[0]
	hm.Overflow = survivalColors[len(survivalColors)-1]
	return hm
}

// CreateLandmarkHeatmap renders survival at each landmark time for every arm.
func CreateLandmarkHeatmap(results *analysis.Results, plotTitle string) ([]byte, error) {
	if results == nil || len(results.Summaries) == 0 {
		return nil, fmt.Errorf("no arm summaries to plot heatmap")
	}
	numCols := len(results.Summaries[0].Landmarks)
	if numCols == 0 {
		return nil, fmt.Errorf("no landmark times to plot heatmap")
	}

	grid := landmarkGrid{cols: numCols, z: make([][]float64, len(results.Summaries))}
	yTicks := make([]plot.Tick, len(results.Summaries))
	for r, s := range results.Summaries {
		if len(s.Landmarks) != numCols {
			return nil, fmt.Errorf("arm %s has %d landmarks, expected %d", s.Arm, len(s.Landmarks), numCols)
		}
		row := make([]float64, numCols)
		for c, lm := range s.Landmarks {
			row[c] = lm.Survival
		}
		grid.z[r] = row
		yTicks[r] = plot.Tick{Value: float64(r), Label: s.Arm}
	}
	xTicks := make([]plot.Tick, numCols)
	for c, lm := range results.Summaries[0].Landmarks {
		xTicks[c] = plot.Tick{Value: float64(c), Label: fmt.Sprintf("%g", lm.Time)}
	}

	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = "Landmark Time"
	p.Y.Label.Text = "Arm"
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Min = -0.5
	p.X.Max = float64(numCols) - 0.5
	p.Y.Min = -0.5
	p.Y.Max = float64(len(results.Summaries)) - 0.5

	p.Add(newSurvivalHeatMap(grid))

	log.Debugf("Landmark heatmap %q: %d arms x %d landmarks", plotTitle, len(results.Summaries), numCols)

	writer, err := p.WriterTo(vg.Points(800), vg.Points(100+40*float64(len(results.Summaries))), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create heatmap writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write heatmap to buffer: %v", err)
	}
	return buf.Bytes(), nil
}

package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/daiyunshi/clinical-additivity-reproduce/internal/analysis"
	"github.com/daiyunshi/clinical-additivity-reproduce/internal/figure"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// ReportInput is everything the PDF report shows.
type ReportInput struct {
	Title string

	// Cox PH test results overview.
	InputPath      string
	TotalRows      int
	PrimaryRows    int // rows left after excluding supplementary combinations
	FigureCounts   map[string]int
	FigureOrder    []string
	IncludesSuppl  bool
	InterpolatedBy string

	Results   *analysis.Results
	Landmarks []float64

	GridImage  []byte // PNG of the survival curve grid
	GridSize   figure.Size
	HeatmapPNG []byte
}

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64 // manually tracked Y position for flowing content
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable draws a header row and body rows with relative column widths.
func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}
	row := func(cells []string, style string, fill bool) {
		s.checkAddPage(s.lineHeight)
		s.applyStyle(style)
		x := pdfMargin
		for i, cell := range cells {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", fill, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(s.lineHeight * math.Min(float64(len(rows)+1), 6))
	row(headers, "tableHeader", true)
	for _, cells := range rows {
		row(cells, "tableCell", false)
	}
}

// addImage places a PNG scaled to fit the content width and the rest of the
// page, keeping its aspect ratio.
func (s *pdfStyler) addImage(imageBytes []byte, imageName string, aspect float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	width := pdfContentWidth
	height := width * aspect
	maxHeight := s.pageHeight - s.contentTopY - 2*s.lineHeight
	if height > maxHeight {
		height = maxHeight
		width = height / aspect
	}
	s.checkAddPage(height + s.lineHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(imageName, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "not reached"
	}
	return fmt.Sprintf("%.3g", v)
}

// WritePDFReport renders the report to w.
func WritePDFReport(w io.Writer, in ReportInput) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	title := in.Title
	if title == "" {
		title = "PFS Prediction Curves"
	}
	styler.writeParagraph(title, "h1", "C")
	styler.addSpacer(5)

	if in.InputPath != "" {
		styler.writeParagraph("Cox PH Test Results", "h2", "L")
		styler.writeParagraph(fmt.Sprintf("Input: %s", in.InputPath), "normal", "L")
		styler.writeParagraph(fmt.Sprintf("Rows: %d total, %d excluding supplementary combinations.", in.TotalRows, in.PrimaryRows), "normal", "L")
		if in.IncludesSuppl {
			styler.writeParagraph("Supplementary combinations are included below.", "normal", "L")
		}
		if len(in.FigureOrder) > 0 {
			rows := make([][]string, 0, len(in.FigureOrder))
			for _, tag := range in.FigureOrder {
				rows = append(rows, []string{tag, fmt.Sprintf("%d", in.FigureCounts[tag])})
			}
			styler.writeTable([]string{"Figure", "Rows"}, []float64{0.5, 0.5}, rows)
		}
		styler.addSpacer(5)
	}

	styler.writeParagraph("Arm Summary", "h2", "L")
	if in.InterpolatedBy != "" {
		styler.writeParagraph(fmt.Sprintf("Interpolation: %s", in.InterpolatedBy), "normal", "L")
	}
	if in.Results == nil || len(in.Results.Summaries) == 0 {
		styler.writeParagraph("No arm summaries to display.", "normal", "L")
	} else {
		headers := []string{"Arm", "Points", "Last Time", "Median PFS"}
		for _, lt := range in.Landmarks {
			headers = append(headers, fmt.Sprintf("S(%g)", lt))
		}
		widths := make([]float64, len(headers))
		for i := range widths {
			widths[i] = 1 / float64(len(headers))
		}
		rows := make([][]string, 0, len(in.Results.Summaries))
		for _, sum := range in.Results.Summaries {
			cells := []string{sum.Arm, fmt.Sprintf("%d", sum.NumPoints), formatValue(sum.MaxTime), formatValue(sum.MedianTime)}
			for i := range in.Landmarks {
				v := math.NaN()
				if i < len(sum.Landmarks) {
					v = sum.Landmarks[i].Survival
				}
				cells = append(cells, formatValue(v))
			}
			rows = append(rows, cells)
		}
		styler.writeTable(headers, widths, rows)
	}
	if in.Results != nil {
		for _, e := range in.Results.AnalysisErrors {
			styler.writeParagraph(e, "normal", "L")
		}
	}

	if len(in.HeatmapPNG) > 0 && in.Results != nil {
		styler.addSpacer(5)
		styler.writeParagraph("Survival at Landmark Times", "h2", "L")
		styler.addImage(in.HeatmapPNG, "landmark_heatmap", (100+40*float64(len(in.Results.Summaries)))/800, "")
	}

	if len(in.GridImage) > 0 {
		styler.newPage()
		styler.writeParagraph("Survival Curves", "h1", "C")
		aspect := 0.5
		if in.GridSize.Width > 0 && in.GridSize.Height > 0 {
			aspect = in.GridSize.Height / in.GridSize.Width
		}
		styler.addImage(in.GridImage, "curve_grid", aspect,
			fmt.Sprintf("Figure size %.2f x %.2f in", in.GridSize.Width, in.GridSize.Height))
	} else {
		log.Warn("No curve grid image, PDF report has no figures")
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "failed to write PDF")
	}
	return nil
}

// BuildPDFReport creates the PDF report at path.
func BuildPDFReport(path string, in ReportInput) error {
	var buf bytes.Buffer
	if err := WritePDFReport(&buf, in); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "failed to save PDF report %s", path)
}

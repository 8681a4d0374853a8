package attendance

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/signintech/gopdf"
)

// PDFLabels carries the localized strings the renderer draws. Defaults are
// the zh-TW catalog values.
type PDFLabels struct {
	Title    string
	Name     string
	Date     string
	PunchIn  string
	PunchOut string
	Footer   string // e.g. "列印日期/時間" prefix
	PageOf   string // fmt with page and total, e.g. "第%d頁/共%d頁"
}

func DefaultPDFLabels() PDFLabels {
	return PDFLabels{
		Title:    "刷卡記錄表",
		Name:     "姓名",
		Date:     "日期",
		PunchIn:  "上班時間",
		PunchOut: "下班時間",
		Footer:   "列印日期/時間",
		PageOf:   "第%d頁/共%d頁",
	}
}

// PDFOptions configures the monthly report document.
type PDFOptions struct {
	FontPath    string // TTF with CJK coverage, e.g. msjh.ttf
	StampPath   string // optional stamp image, drawn bottom-left
	Password    string // user password for the encryption post-step
	RowsPerPage int    // defaults to 40
	Labels      PDFLabels
	Now         func() time.Time // footer timestamp; defaults to time.Now
}

const (
	pdfTitleSize  = 16
	pdfBodySize   = 14
	pdfFooterSize = 8
	// A4 in centimetres; positions are computed in proportional units so
	// the layout survives a paper-size change.
	pageWidthCM  = 21.0
	pageHeightCM = 29.7
)

func pageCount(rows, perPage int) int {
	return rows/perPage + 1
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// WritePDF renders the report and returns the encrypted document bytes.
// Rendering and encryption are separate steps: the clear document is built
// first, then re-read and AES-128 protected with print-only permissions.
func WritePDF(rows []Row, opts PDFOptions) ([]byte, error) {
	raw, err := renderPDF(rows, opts)
	if err != nil {
		return nil, err
	}
	return encryptPDF(raw, opts.Password)
}

func renderPDF(rows []Row, opts PDFOptions) ([]byte, error) {
	if opts.RowsPerPage <= 0 {
		opts.RowsPerPage = 40
	}
	if opts.Labels == (PDFLabels{}) {
		opts.Labels = DefaultPDFLabels()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFont("report", opts.FontPath); err != nil {
		return nil, fmt.Errorf("load font %s: %w", opts.FontPath, err)
	}

	pageW := gopdf.PageSizeA4.W
	pageH := gopdf.PageSizeA4.H
	wcm := round3(pageW / pageWidthCM)
	hcm := round3(pageH / pageHeightCM)
	shiftX := wcm

	lineHeight := pdfBodySize*1.25 + 0.05*hcm
	pages := pageCount(len(rows), opts.RowsPerPage)

	colX := []float64{shiftX, shiftX + 2*wcm, shiftX + 7*wcm, shiftX + 12*wcm, shiftX + 17*wcm}

	for page := 0; page < pages; page++ {
		pdf.AddPage()
		pdf.SetTextColor(0, 0, 0)
		pdf.SetStrokeColor(0, 0, 0)
		pdf.SetLineWidth(0.1)

		// Title, centered.
		if err := pdf.SetFont("report", "", pdfTitleSize); err != nil {
			return nil, err
		}
		titleW, err := pdf.MeasureTextWidth(opts.Labels.Title)
		if err != nil {
			return nil, err
		}
		pdf.SetXY((pageW-titleW)/2, 1*hcm)
		if err := pdf.Text(opts.Labels.Title); err != nil {
			return nil, err
		}

		// Column header row with rules above and below.
		y := 2 * hcm
		if err := pdf.SetFont("report", "", pdfBodySize); err != nil {
			return nil, err
		}
		pdf.Line(shiftX, y-lineHeight+0.05*hcm, pageW-shiftX, y-lineHeight+0.05*hcm)
		headers := []string{"#", opts.Labels.Name, opts.Labels.Date, opts.Labels.PunchIn, opts.Labels.PunchOut}
		for i, h := range headers {
			pdf.SetXY(colX[i], y)
			if err := pdf.Text(h); err != nil {
				return nil, err
			}
		}
		pdf.Line(shiftX, y+0.1*hcm, pageW-shiftX, y+0.1*hcm)

		// Body rows.
		y += lineHeight + 0.1*hcm
		for j := 0; j < opts.RowsPerPage; j++ {
			idx := page*opts.RowsPerPage + j
			if idx >= len(rows) {
				break
			}
			row := rows[idx]
			cells := []string{fmt.Sprintf("%d", idx+1), row.UserName, row.Date, row.PunchInTime, row.PunchOutTime}
			for i, cell := range cells {
				if cell == "" {
					continue
				}
				pdf.SetXY(colX[i], y)
				if err := pdf.Text(cell); err != nil {
					return nil, err
				}
			}
			y += lineHeight
		}

		// Footer: dash fill pushes the print timestamp and page counter to
		// the right margin.
		if err := pdf.SetFont("report", "", pdfFooterSize); err != nil {
			return nil, err
		}
		pageOf := fmt.Sprintf(opts.Labels.PageOf, page+1, pages)
		footer := fmt.Sprintf(" %s：%s %s ----", opts.Labels.Footer, now().Format("2006-01-02 15:04:05"), pageOf)
		footerW, err := pdf.MeasureTextWidth(footer)
		if err != nil {
			return nil, err
		}
		dashW, err := pdf.MeasureTextWidth("-")
		if err != nil {
			return nil, err
		}
		dashes := dashCount(pageW-2*shiftX, footerW, dashW)
		line := strings.Repeat("-", dashes) + footer
		lineW, err := pdf.MeasureTextWidth(line)
		if err != nil {
			return nil, err
		}
		pdf.SetXY(pageW-shiftX-lineW, y+0.1*hcm)
		if err := pdf.Text(line); err != nil {
			return nil, err
		}
	}

	if opts.StampPath != "" {
		if err := drawStamp(&pdf, opts.StampPath, wcm, pageH-2*hcm, hcm); err != nil {
			return nil, err
		}
	}

	return pdf.GetBytesPdf(), nil
}

func dashCount(available, textW, dashW float64) int {
	if dashW <= 0 || textW >= available {
		return 0
	}
	return int((available - textW) / dashW)
}

// drawStamp scales the image to the given height keeping its aspect ratio.
func drawStamp(pdf *gopdf.GoPdf, path string, x, y, height float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open stamp %s: %w", path, err)
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode stamp %s: %w", path, err)
	}

	scale := height / float64(cfg.Height)
	rect := &gopdf.Rect{W: float64(cfg.Width) * scale, H: height}
	return pdf.Image(path, x, y, rect)
}

func encryptPDF(raw []byte, password string) ([]byte, error) {
	conf := model.NewAESConfiguration(password, password, 128)
	conf.Permissions = model.PermissionsPrint

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(raw), &out, conf); err != nil {
		return nil, fmt.Errorf("encrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"

	"github.com/soulful-academy/chakra-report/internal/content"
	"github.com/soulful-academy/chakra-report/internal/models"
)

// Color scheme - purple/pink brand theme
var (
	colorPrimary     = [3]int{139, 92, 246}  // Purple header band
	colorAccent      = [3]int{236, 72, 153}  // Pink side stripe
	colorTextDark    = [3]int{44, 62, 80}    // Dark text
	colorTextMuted   = [3]int{127, 140, 141} // Muted text
	colorBarTrack    = [3]int{240, 240, 240} // Empty bar background
	colorTableHeader = [3]int{139, 92, 246}  // Purple header
	colorTableAlt    = [3]int{245, 243, 255} // Alternating row
	colorGridLine    = [3]int{220, 220, 220} // Rules and borders
)

// Page geometry in mm (A4 portrait).
const (
	marginLeft       = 18.0
	marginTop        = 28.0
	marginRight      = 15.0
	marginBottom     = 22.0
	coverBandHeight  = 22.0
	stripeWidth      = 7.0
	barMaxWidth      = 60.0
	barHeight        = 5.0
	titleBandHeight  = 8.0
	detailBreakY     = 250.0
	logoImageName    = "brand-logo"
	brandName        = "Soulful Academy"
	reportFooterLine = "Auto-generated by Soulful Academy Chakra Template. Use this as a coaching aid."
)

const (
	interpretationBlocked = "There are some energy blocks that need attention. Begin with the centres marked " +
		"Blocked / Underactive and work upwards from the root."
	interpretationWeak = "Your energy is mostly flowing, with a few centres asking for extra care and balance."
	interpretationOpen = "Your energy centres are open and flowing. Keep nurturing them with daily practice."

	disclaimerText = "This report is an energetic and coaching perspective to help you understand patterns. " +
		"For medical or psychological diagnosis, please consult an appropriate professional."

	promotionText = "Continue your journey with Soulful Academy: guided chakra healing circles, Reiki " +
		"attunements and one-to-one coaching sessions are available to deepen this work. Ask your coach " +
		"about the next intake."
)

var auraInterpretations = map[string]string{
	"large":  "Your field is radiating strongly right now. Protect it after group work.",
	"medium": "Your field shows good daily radiance with room to expand.",
	"small":  "Your field is drawn inward right now. Energy hygiene and rest will open it again.",
}

// placement records where a block landed so layout rules can be checked.
type placement struct {
	kind   string // "bar", "crystal_cell", "title", "status"
	chakra models.Chakra
	page   int
	y      float64
	width  float64
	color  models.RGB
	text   string
}

// reportData is the per-call rendering state. Nothing here outlives Generate.
type reportData struct {
	rec            *models.Record
	variant        Variant
	sections       Sections
	interpretation string
	trace          []placement
}

func (d *reportData) record(p placement) {
	d.trace = append(d.trace, p)
}

// PDFGenerator handles PDF report generation.
type PDFGenerator struct {
	// LogoPath is an optional cached image printed in the cover band. A
	// missing or unreadable file leaves the region blank.
	LogoPath string
}

// NewPDFGenerator creates a new PDF generator.
func NewPDFGenerator(logoPath string) *PDFGenerator {
	return &PDFGenerator{LogoPath: logoPath}
}

// Generate renders rec as a complete PDF document.
func (g *PDFGenerator) Generate(rec *models.Record, v Variant) ([]byte, error) {
	if rec == nil {
		return nil, errors.New("nil report record")
	}

	pdf, _ := g.render(rec, v)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) render(rec *models.Record, v Variant) (*fpdf.Fpdf, *reportData) {
	data := &reportData{
		rec:      rec,
		variant:  v,
		sections: v.Sections(),
	}
	data.interpretation = coverInterpretation(rec, data.sections)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle(fmt.Sprintf("%s - Chakra Report", rec.ClientName), true)
	pdf.SetAuthor(rec.CoachName, true)
	pdf.SetCreator(brandName, false)
	pdf.SetHeaderFuncMode(func() { g.drawPageChrome(pdf, data) }, true)

	// Cover page
	g.writeCoverPage(pdf, data)

	// Explanatory page
	pdf.AddPage()
	if data.sections.Aura {
		g.addSectionTitle(pdf, "Your Aura & Energy Expression")
		g.writeAuraSection(pdf, data)
	} else {
		g.addSectionTitle(pdf, "Understanding Your Chakras")
		g.writeChakraPrimer(pdf)
	}
	g.writeDisclaimer(pdf)

	// Summary table
	pdf.AddPage()
	g.addSectionTitle(pdf, "Chakra Summary")
	g.writeSummaryTable(pdf, data)

	// Detail pages
	pdf.AddPage()
	g.addSectionTitle(pdf, "Chakra-by-Chakra Guidance")
	g.writeDetailSection(pdf, data)

	// Closing page
	pdf.AddPage()
	g.addSectionTitle(pdf, "Your Path Forward")
	g.writeClosingPage(pdf, data)

	g.addPageNumbers(pdf)

	return pdf, data
}

// drawPageChrome runs on every new page, including automatic breaks.
func (g *PDFGenerator) drawPageChrome(pdf *fpdf.Fpdf, data *reportData) {
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFillColor(colorAccent[0], colorAccent[1], colorAccent[2])
	pdf.Rect(0, 0, stripeWidth, pageHeight, "F")

	if pdf.PageNo() == 1 {
		return
	}

	pdf.SetDrawColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 15, pageWidth-marginRight, 15)

	pdf.SetXY(marginLeft, 17)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.CellFormat(0, 5, "SOULFUL ACADEMY CHAKRA REPORT", "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.CellFormat(0, 5, encodeText(data.rec.ClientName), "", 1, "R", false, 0, "")
}

// writeCoverPage writes the client details, chakra snapshot and interpretation.
func (g *PDFGenerator) writeCoverPage(pdf *fpdf.Fpdf, data *reportData) {
	rec := data.rec
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()

	// Header band
	pdf.SetFillColor(colorPrimary[0], colorPrimary[1], colorPrimary[2])
	pdf.Rect(0, 0, pageWidth, coverBandHeight, "F")
	g.placeLogo(pdf, 10, 3, 16)

	subtitle := "Chakra & Crystal Guidance Report"
	if data.sections.Aura {
		subtitle = "Aura & Chakra Guidance Report"
	}
	pdf.SetXY(30, 4)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 8, brandName, "", 1, "L", false, 0, "")
	pdf.SetX(30)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, subtitle, "", 1, "L", false, 0, "")

	// Client information
	pdf.SetY(coverBandHeight + 10)
	g.writeHeading(pdf, "Client Information", 13)
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	g.writeLine(pdf, "Client Name: "+rec.ClientName)
	g.writeLine(pdf, "Session Date: "+rec.SessionDate)
	g.writeLine(pdf, "Coach / Healer: "+rec.CoachName)
	if rec.Gender != "" {
		g.writeLine(pdf, "Gender: "+string(rec.Gender))
	}
	if strings.TrimSpace(rec.Intent) != "" {
		pdf.MultiCell(0, 6, encodeText("Primary Intent: "+rec.Intent), "", "L", false)
	}

	if data.sections.Aura {
		pdf.Ln(3)
		g.writeHeading(pdf, "Aura & Field", 12)
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		g.writeLine(pdf, "Aura Color Type: "+string(rec.AuraColor))
		g.writeLine(pdf, "Aura Size: "+string(rec.AuraSize))
	}

	// Chakra snapshot bars
	pdf.Ln(4)
	g.writeHeading(pdf, "Chakra Snapshot", 12)
	pdf.SetFont("Arial", "", 10)
	for _, a := range rec.Ordered() {
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.CellFormat(55, 7, encodeText(string(a.Chakra)), "", 0, "L", false, 0, "")

		x, y := pdf.GetXY()
		pdf.SetFillColor(colorBarTrack[0], colorBarTrack[1], colorBarTrack[2])
		pdf.Rect(x, y+1, barMaxWidth, barHeight, "F")

		color := models.StatusColor(a.Status)
		width := float64(models.StatusScore(a.Status)) / 100 * barMaxWidth
		if width > 0 {
			pdf.SetFillColor(color[0], color[1], color[2])
			pdf.Rect(x, y+1, width, barHeight, "F")
		}
		data.record(placement{kind: "bar", chakra: a.Chakra, page: pdf.PageNo(), y: y, width: width, color: color})

		pdf.SetXY(x+barMaxWidth+4, y)
		pdf.CellFormat(0, 7, encodeText(string(a.Status)), "", 1, "L", false, 0, "")
	}

	blocked, pct := models.BlockedStats(rec)
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	g.writeLine(pdf, fmt.Sprintf("Blocked centres: %d of %d (%.1f%%)", blocked, len(models.Chakras), pct))

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.MultiCell(0, 5, encodeText(data.interpretation), "", "L", false)

	if data.sections.QuickReading {
		pdf.Ln(4)
		g.writeHeading(pdf, "Quick Reading", 12)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.MultiCell(0, 5, encodeText(content.Summarize(rec.Ordered())), "", "L", false)
	}
}

// coverInterpretation picks the cover sentence. Aura reports branch on aura
// size when one was given; everything else branches on the blocked count.
func coverInterpretation(rec *models.Record, s Sections) string {
	if s.Aura && strings.TrimSpace(string(rec.AuraSize)) != "" {
		return auraInterpretations[rec.AuraSize.Band()]
	}

	blocked, _ := models.BlockedStats(rec)
	if blocked > 0 {
		return interpretationBlocked
	}
	for _, a := range rec.Ordered() {
		if a.Status != models.StatusBalanced {
			return interpretationWeak
		}
	}
	return interpretationOpen
}

// placeLogo draws the cached logo if it can be decoded. Failures are logged
// and leave the area blank.
func (g *PDFGenerator) placeLogo(pdf *fpdf.Fpdf, x, y, w float64) bool {
	if g.LogoPath == "" {
		return false
	}
	raw, err := os.ReadFile(g.LogoPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", g.LogoPath).Msg("Unable to read logo, leaving cover blank")
		}
		return false
	}

	imageType := detectImageType(raw)
	if imageType == "" {
		log.Warn().Str("path", g.LogoPath).Msg("Logo is not a supported image type")
		return false
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(logoImageName, opts, bytes.NewReader(raw))
	if pdf.Err() {
		log.Warn().Err(pdf.Error()).Str("path", g.LogoPath).Msg("Logo could not be decoded, leaving cover blank")
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(logoImageName, x, y, w, 0, false, opts, 0, "")
	return true
}

func detectImageType(raw []byte) string {
	switch http.DetectContentType(raw) {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

// addSectionTitle writes the large title under the running header.
func (g *PDFGenerator) addSectionTitle(pdf *fpdf.Fpdf, section string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.CellFormat(0, 10, encodeText(section), "", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func (g *PDFGenerator) writeHeading(pdf *fpdf.Fpdf, text string, size float64) {
	pdf.SetFont("Arial", "B", size)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.CellFormat(0, 7, encodeText(text), "", 1, "L", false, 0, "")
}

func (g *PDFGenerator) writeLine(pdf *fpdf.Fpdf, text string) {
	pdf.CellFormat(0, 6, encodeText(text), "", 1, "L", false, 0, "")
}

func (g *PDFGenerator) writeParagraph(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.MultiCell(0, 6, encodeText(text), "", "L", false)
}

// writeAuraSection explains the aura colour and size.
func (g *PDFGenerator) writeAuraSection(pdf *fpdf.Fpdf, data *reportData) {
	g.writeParagraph(pdf, content.AuraText(data.rec.AuraColor))

	pdf.Ln(3)
	g.writeHeading(pdf, "Aura Size Meaning", 12)
	g.writeParagraph(pdf, content.AuraSizeText(data.rec.AuraSize))
}

// writeChakraPrimer explains each centre and the status colour legend.
func (g *PDFGenerator) writeChakraPrimer(pdf *fpdf.Fpdf) {
	g.writeParagraph(pdf, "Each chakra is an energy centre holding a theme of your life. "+
		"The status colours used throughout this report are explained below.")
	pdf.Ln(3)

	for _, c := range models.Chakras {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.CellFormat(0, 6, encodeText(string(c)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, encodeText(content.Explanation(c)), "", "L", false)
		pdf.Ln(1)
	}

	pdf.Ln(3)
	g.writeHeading(pdf, "Status Colours", 12)
	pdf.SetFont("Arial", "", 10)
	for _, s := range models.Statuses {
		color := models.StatusColor(s)
		x, y := pdf.GetXY()
		pdf.SetFillColor(color[0], color[1], color[2])
		pdf.Rect(x, y+1, 8, 4, "F")
		pdf.SetX(x + 11)
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.CellFormat(48, 6, encodeText(string(s)), "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, encodeText(content.StatusGuidance(s)), "", "L", false)
	}
}

func (g *PDFGenerator) writeDisclaimer(pdf *fpdf.Fpdf) {
	pdf.Ln(4)
	g.writeHeading(pdf, "Important Note from Soulful Academy", 12)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.MultiCell(0, 5, encodeText(disclaimerText), "", "L", false)
}

// writeSummaryTable writes one row per chakra.
func (g *PDFGenerator) writeSummaryTable(pdf *fpdf.Fpdf, data *reportData) {
	pageWidth, _ := pdf.GetPageSize()
	tableWidth := pageWidth - marginLeft - marginRight
	colChakra, colStatus := 46.0, 40.0
	colLast := tableWidth - colChakra - colStatus

	lastHeader := "Crystal Suggestions"
	if !data.sections.Crystals {
		lastHeader = "Energy Score"
	}

	pdf.SetFillColor(colorTableHeader[0], colorTableHeader[1], colorTableHeader[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(colChakra, 8, "Chakra", "0", 0, "L", true, 0, "")
	pdf.CellFormat(colStatus, 8, "Status", "0", 0, "L", true, 0, "")
	pdf.CellFormat(colLast, 8, lastHeader, "0", 1, "L", true, 0, "")

	pdf.SetDrawColor(colorGridLine[0], colorGridLine[1], colorGridLine[2])
	for i, a := range data.rec.Ordered() {
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(colorTableAlt[0], colorTableAlt[1], colorTableAlt[2])
		}
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(colChakra, 8, encodeText(string(a.Chakra)), "B", 0, "L", fill, 0, "")

		pdf.SetFont("Arial", "", 9)
		status := models.StatusColor(a.Status)
		if fill {
			pdf.SetFillColor(colorTableAlt[0], colorTableAlt[1], colorTableAlt[2])
		}
		x, y := pdf.GetXY()
		pdf.CellFormat(colStatus, 8, "     "+encodeText(string(a.Status)), "B", 0, "L", fill, 0, "")
		pdf.SetFillColor(status[0], status[1], status[2])
		pdf.Rect(x+1, y+2.5, 3, 3, "F")

		if fill {
			pdf.SetFillColor(colorTableAlt[0], colorTableAlt[1], colorTableAlt[2])
		}
		var cell string
		if data.sections.Crystals {
			cell = Truncate(Sanitize(a.Crystals), CrystalCellLimit)
			data.record(placement{kind: "crystal_cell", chakra: a.Chakra, page: pdf.PageNo(), y: y, text: cell})
			pdf.SetFont("Arial", "", 7)
		} else {
			cell = fmt.Sprintf("%d%%", models.StatusScore(a.Status))
		}
		pdf.CellFormat(colLast, 8, encodeText(cell), "B", 1, "L", fill, 0, "")
	}
}

// writeDetailSection writes one block per chakra. A block never starts below
// detailBreakY, so its title band and status line share a page.
func (g *PDFGenerator) writeDetailSection(pdf *fpdf.Fpdf, data *reportData) {
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.MultiCell(0, 5, encodeText("Each centre below shows what the energy centre holds, what your current status "+
		"looks like and what to prioritise in your self-healing or coaching sessions."), "", "L", false)

	for _, a := range data.rec.Ordered() {
		if pdf.GetY() > detailBreakY {
			pdf.AddPage()
		}
		pdf.Ln(3)

		color := models.StatusColor(a.Status)
		data.record(placement{kind: "title", chakra: a.Chakra, page: pdf.PageNo(), y: pdf.GetY(), color: color})
		pdf.SetFillColor(color[0], color[1], color[2])
		pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, titleBandHeight, "  "+encodeText(string(a.Chakra)), "", 1, "L", true, 0, "")

		pdf.Ln(1)
		data.record(placement{kind: "status", chakra: a.Chakra, page: pdf.PageNo(), y: pdf.GetY(), color: color})
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, encodeText("Status: "+string(a.Status)), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, encodeText(content.ChakraText(a.Chakra, a.Status)), "", "L", false)

		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, encodeText("Coach notes: "+a.Notes), "", "L", false)

		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, encodeText("Suggested remedies: "+a.Remedies), "", "L", false)

		if data.sections.Crystals {
			pdf.MultiCell(0, 5, encodeText("Crystal remedies: "+a.Crystals), "", "L", false)
		}
	}
}

// writeClosingPage writes the follow-up plan, affirmations and footer.
func (g *PDFGenerator) writeClosingPage(pdf *fpdf.Fpdf, data *reportData) {
	followUp := data.rec.FollowUp
	if strings.TrimSpace(followUp) == "" {
		followUp = content.DefaultFollowUp
	}
	affirmations := data.rec.Affirmations
	if strings.TrimSpace(affirmations) == "" {
		affirmations = content.DefaultAffirmations
	}

	g.writeHeading(pdf, "Follow-up Plan", 13)
	g.writeParagraph(pdf, followUp)

	pdf.Ln(4)
	g.writeHeading(pdf, "Affirmations for Daily Alignment", 12)
	g.writeParagraph(pdf, affirmations)

	pdf.Ln(6)
	g.writeHeading(pdf, "Continue Your Journey", 12)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
	pdf.MultiCell(0, 5, encodeText(promotionText), "", "L", false)

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	pdf.MultiCell(0, 4, encodeText(reportFooterLine), "", "L", false)
}

// addPageNumbers adds page numbers to all pages except the first (cover).
func (g *PDFGenerator) addPageNumbers(pdf *fpdf.Fpdf) {
	// Disable auto page break while adding footers to prevent creating new pages
	pdf.SetAutoPageBreak(false, 0)

	totalPages := pdf.PageCount()
	for i := 2; i <= totalPages; i++ {
		pdf.SetPage(i)
		pageWidth, pageHeight := pdf.GetPageSize()

		pdf.SetDrawColor(colorGridLine[0], colorGridLine[1], colorGridLine[2])
		pdf.SetLineWidth(0.3)
		pdf.Line(marginLeft, pageHeight-18, pageWidth-marginRight, pageHeight-18)

		pdf.SetY(pageHeight - 15)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of %d", i-1, totalPages-1), "", 0, "C", false, 0, "")
	}
}

package pdfexport

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	dbmodels "appraisal-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	ExportAppraisal(rec dbmodels.Appraisal) ([]byte, error)
}

var Instance Provider

// NewHandler fontDir каталог с Arial.ttf и Arial Bold.ttf, без шрифтов кириллица не выводится
func NewHandler(fontDir string) {
	Instance = NewInstance(fontDir)
}

func NewInstance(fontDir string) Provider {
	return impl{
		fontDir: fontDir,
	}
}

type impl struct {
	fontDir string
}

const (
	fontFamily      = "Arial"
	fontFileRegular = "Arial.ttf"
	fontFileBold    = "Arial Bold.ttf"
	lineHeight      = 6.0
)

const summaryTemplate = `<b>Employee:</b> {{.Employee}}<br>` +
	`<b>Job title:</b> {{.JobTitle}}<br>` +
	`<b>Division:</b> {{.Division}}<br>` +
	`<b>Appraiser:</b> {{.Appraiser}}<br>` +
	`<b>Period:</b> {{.Period}}<br>` +
	`<b>Status:</b> {{.Status}}{{if .ManagerStatus}} ({{.ManagerStatus}}){{end}}<br>`

type summaryData struct {
	Employee      string
	JobTitle      string
	Division      string
	Appraiser     string
	Period        string
	Status        string
	ManagerStatus string
}

func (i impl) ExportAppraisal(rec dbmodels.Appraisal) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportAppraisal panic recover: %v", r)
		}
	}()
	w := i.newWriter()
	w.pdf.AddPage()
	if w.pdf.Error() != nil {
		return nil, w.pdf.Error()
	}

	w.pdf.SetFont(w.family, "B", 16)
	w.pdf.CellFormat(0, 10, w.tr("Performance Appraisal"), "", 1, "C", false, 0, "")
	w.pdf.Ln(2)

	w.pdf.SetFont(w.family, "", 11)
	tpl, err := template.New("appraisal_summary").Parse(summaryTemplate)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, newSummary(rec)); err != nil {
		return nil, err
	}
	html := w.pdf.HTMLBasicNew()
	html.Write(lineHeight, w.tr(buf.String()))
	w.pdf.Ln(4)

	w.section("Key result areas")
	for _, kra := range rec.KeyResultAreas {
		w.row(kra.Area, fmt.Sprintf("%s (weight %.0f)", kra.Targets, kra.Weight))
	}

	w.section("End-year review")
	for _, target := range rec.EndOfYearReview.Targets {
		w.row(target.Target, fmt.Sprintf("score %.2f, weight %.2f", target.Score, target.WeightOfTarget))
	}
	calc := rec.EndOfYearReview.Calculations
	w.row("Total", fmt.Sprintf("%.2f / average %.2f / weighted %.2f", calc.TotalScore, calc.AverageScore, calc.WeightedScore))

	w.section("Competencies")
	for _, item := range rec.CoreCompetencies {
		w.row(item.Name, fmt.Sprintf("%.2f", item.Score))
	}
	for _, item := range rec.NonCoreCompetencies {
		w.row(item.Name, fmt.Sprintf("%.2f", item.Score))
	}
	overall := rec.OverallAssessment
	w.row("Overall", fmt.Sprintf("%.2f (%.2f%%) %s", overall.OverallTotal, overall.OverallScorePercentage, overall.OverallRating))

	w.section("Final sections")
	w.row("Appraiser comments", rec.AppraiserComments)
	w.row("Career development", rec.CareerDevelopmentComments)
	w.row("Assessment decision", string(rec.AssessmentDecision))
	w.row("Appraisee comments", rec.AppraiseeComments)

	w.section("Signatures")
	w.row("Appraiser", signatureLine(rec.AppraiserSignature, rec.AppraiserSignatureDate))
	w.row("Appraisee", signatureLine(rec.AppraiseeSignature, rec.AppraiseeSignatureDate))

	if w.pdf.Error() != nil {
		return nil, w.pdf.Error()
	}
	out := new(bytes.Buffer)
	if err = w.pdf.Output(out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type writer struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

// newWriter UTF-8 шрифт из каталога, если он есть, иначе встроенный Helvetica (cp1252)
func (i impl) newWriter() writer {
	pdf := fpdf.New("P", "mm", "A4", i.fontDir)
	if i.fontDir != "" && fileExists(filepath.Join(i.fontDir, fontFileRegular)) && fileExists(filepath.Join(i.fontDir, fontFileBold)) {
		pdf.AddUTF8Font(fontFamily, "", fontFileRegular)
		pdf.AddUTF8Font(fontFamily, "B", fontFileBold)
		return writer{
			pdf:    pdf,
			family: fontFamily,
			tr:     func(s string) string { return s },
		}
	}
	if i.fontDir != "" {
		log.WithField("font_dir", i.fontDir).Warn("шрифты для pdf не найдены, используется встроенный шрифт")
	}
	return writer{
		pdf:    pdf,
		family: "Helvetica",
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (w writer) section(title string) {
	w.pdf.Ln(2)
	w.pdf.SetFont(w.family, "B", 12)
	w.pdf.SetFillColor(221, 235, 247)
	w.pdf.CellFormat(0, 8, w.tr(title), "1", 1, "L", true, 0, "")
	w.pdf.SetFont(w.family, "", 10)
}

func (w writer) row(label, value string) {
	w.pdf.CellFormat(60, lineHeight, w.tr(label), "1", 0, "L", false, 0, "")
	w.pdf.MultiCell(0, lineHeight, w.tr(value), "1", "L", false)
}

func newSummary(rec dbmodels.Appraisal) summaryData {
	info := rec.EmployeeInfo
	return summaryData{
		Employee:      joinNonEmpty(info.Title, info.FirstName, info.OtherNames, info.Surname),
		JobTitle:      info.PresentJobTitle,
		Division:      info.Division,
		Appraiser:     joinNonEmpty(rec.AppraiserInfo.Title, rec.AppraiserInfo.FirstName, rec.AppraiserInfo.Surname),
		Period:        fmt.Sprintf("%s - %s", rec.PeriodStart.Format("02.01.2006"), rec.PeriodEnd.Format("02.01.2006")),
		Status:        string(rec.Status),
		ManagerStatus: string(rec.ManagerStatus),
	}
}

func signatureLine(url string, date *time.Time) string {
	if url == "" {
		return "not signed"
	}
	if date == nil {
		return "signed"
	}
	return "signed " + date.Format("02.01.2006")
}

func joinNonEmpty(parts ...string) string {
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			result = append(result, part)
		}
	}
	return strings.Join(result, " ")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package payroll

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfTitle      = "Holerite"
	pdfDisclaimer = "OBS.: OS VALORES GERADOS PODEM VARIAR PARA MAIS OU PARA MENOS, CASO TENHA ALGUMA DUVIDA ENTRE EM CONTATO COM SEU RH."
	pdfSignature  = "ATENCIOSAMENTE\nPROGRAMADORES"

	pdfLabelWidth  = 110
	pdfAmountWidth = 60
	pdfRowHeight   = 8
)

// RenderPDF writes the holerite document for a computed payslip: title,
// earnings and deductions tables, totals block, disclaimer and signature.
func RenderPDF(w io.Writer, slip *Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, pdfTitle, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	renderLineTable(pdf, tr, "RECEBIMENTOS", slip.Earnings)
	renderLineTable(pdf, tr, "DESCONTOS", slip.Deductions)

	pdf.SetFont("Helvetica", "B", 11)
	totals := []Line{
		{Label: "TOTAL RECEBIMENTOS:", Amount: slip.TotalEarnings},
		{Label: "TOTAL DESCONTOS:", Amount: slip.TotalDeductions},
		{Label: "VALOR LÍQUIDO A RECEBER:", Amount: slip.Net},
	}
	for _, row := range totals {
		pdf.CellFormat(pdfLabelWidth, pdfRowHeight, tr(row.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfAmountWidth, pdfRowHeight, FormatBRL(row.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, tr(pdfDisclaimer), "", "J", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(0, 5, pdfSignature, "", "L", false)

	return pdf.Output(w)
}

func renderLineTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, lines []Line) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, pdfRowHeight, title, "", 1, "L", false, 0, "")

	pdf.SetFillColor(190, 190, 190)
	pdf.CellFormat(pdfLabelWidth, pdfRowHeight, tr("Descrição"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfAmountWidth, pdfRowHeight, "Valor", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.CellFormat(pdfLabelWidth, pdfRowHeight, tr(line.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfAmountWidth, pdfRowHeight, FormatBRL(line.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)
}

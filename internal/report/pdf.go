package report

import (
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Anchos de columna en mm, pensados para carta apaisada.
var columnWidths = []float64{28, 38, 52, 26, 26, 32, 30, 27}

// WritePDF escribe el reporte como tabla PDF: encabezado gris en negrita,
// cuerpo beige, columna Total celeste y fila TOTAL verde.
func WritePDF(writer io.Writer, summary Summary) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	// Encabezado.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for index, title := range header {
		pdf.CellFormat(columnWidths[index], 10, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)

	writeRow := func(cells []string, fillR, fillG, fillB int) {
		for index, cell := range cells {
			if index == len(cells)-1 {
				// Columna Total resaltada.
				pdf.SetFillColor(173, 216, 230)
			} else {
				pdf.SetFillColor(fillR, fillG, fillB)
			}
			pdf.CellFormat(columnWidths[index], 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	for _, row := range summary.Rows {
		writeRow([]string{
			row.ProductID,
			row.Barcode,
			row.Name,
			money(row.Price),
			strconv.Itoa(row.Quantity),
			strconv.Itoa(row.InitialQuantity),
			strconv.Itoa(row.SoldQuantity),
			money(row.RowTotal),
		}, 245, 245, 220)
	}

	// Fila TOTAL resaltada en verde.
	pdf.SetFont("Helvetica", "B", 10)
	writeRow([]string{
		"TOTAL",
		"",
		"",
		money(summary.TotalPrice),
		strconv.Itoa(summary.TotalQuantity),
		strconv.Itoa(summary.TotalInitialQuantity),
		strconv.Itoa(summary.TotalSoldQuantity),
		money(summary.GrandTotal),
	}, 144, 238, 144)

	return pdf.Output(writer)
}

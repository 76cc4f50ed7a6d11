package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV escribe el reporte en CSV: encabezado, una fila por item y una
// fila final TOTAL con Barcode/Name en blanco.
func WriteCSV(writer io.Writer, summary Summary) error {
	out := csv.NewWriter(writer)

	if err := out.Write(header); err != nil {
		return err
	}

	for _, row := range summary.Rows {
		record := []string{
			row.ProductID,
			row.Barcode,
			row.Name,
			money(row.Price),
			strconv.Itoa(row.Quantity),
			strconv.Itoa(row.InitialQuantity),
			strconv.Itoa(row.SoldQuantity),
			money(row.RowTotal),
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}

	total := []string{
		"TOTAL",
		"",
		"",
		money(summary.TotalPrice),
		strconv.Itoa(summary.TotalQuantity),
		strconv.Itoa(summary.TotalInitialQuantity),
		strconv.Itoa(summary.TotalSoldQuantity),
		money(summary.GrandTotal),
	}
	if err := out.Write(total); err != nil {
		return err
	}

	out.Flush()
	return out.Error()
}

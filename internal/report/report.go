// Package report arma el reporte de ventas: una fila por item con cantidad
// vendida y total por fila, más una fila TOTAL con las sumas de columna.
// CSV y PDF comparten exactamente esta agregación.
package report

import (
	"github.com/Lelo88/pos-inventory-golang/internal/items"
	"github.com/shopspring/decimal"
)

// header es la fila de encabezado común a ambos formatos.
var header = []string{"Product ID", "Barcode", "Name", "Price", "Quantity", "Initial Quantity", "Sold Quantity", "Total"}

// Row es una fila del reporte ya con derivados calculados.
type Row struct {
	ProductID       string
	Barcode         string
	Name            string
	Price           decimal.Decimal
	Quantity        int
	InitialQuantity int
	SoldQuantity    int
	RowTotal        decimal.Decimal
}

// Summary es el reporte completo: filas más totales de columna.
type Summary struct {
	Rows                 []Row
	TotalPrice           decimal.Decimal
	TotalQuantity        int
	TotalInitialQuantity int
	TotalSoldQuantity    int
	GrandTotal           decimal.Decimal
}

// Build calcula el reporte a partir del inventario.
// rowTotal = price × soldQuantity; los totales suman columna por columna.
func Build(list []items.Item) Summary {
	summary := Summary{
		TotalPrice: decimal.Zero,
		GrandTotal: decimal.Zero,
	}

	for _, item := range list {
		sold := item.SoldQuantity()
		rowTotal := item.Price.Mul(decimal.NewFromInt(int64(sold)))

		summary.Rows = append(summary.Rows, Row{
			ProductID:       item.ProductID,
			Barcode:         item.Barcode,
			Name:            item.Name,
			Price:           item.Price,
			Quantity:        item.Quantity,
			InitialQuantity: item.InitialQuantity,
			SoldQuantity:    sold,
			RowTotal:        rowTotal,
		})

		summary.TotalPrice = summary.TotalPrice.Add(item.Price)
		summary.TotalQuantity += item.Quantity
		summary.TotalInitialQuantity += item.InitialQuantity
		summary.TotalSoldQuantity += sold
		summary.GrandTotal = summary.GrandTotal.Add(rowTotal)
	}

	return summary
}

// money formatea un monto como $X.XX.
func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

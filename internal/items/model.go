package items

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un registro persistido en DB.
// Price se modela como decimal para evitar errores de precisión con float
// (DB: numeric(10,2)).
type Item struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Barcode         string          `json:"barcode"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	InitialQuantity int             `json:"initial_quantity"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SoldQuantity es la cantidad vendida: baseline menos stock actual.
// Nunca es negativa mientras la DB mantenga initial_quantity >= quantity.
func (item Item) SoldQuantity() int {
	return item.InitialQuantity - item.Quantity
}

// RefundableQuantity es el máximo que un refund puede restaurar.
// Por definición coincide con SoldQuantity.
func (item Item) RefundableQuantity() int {
	return item.SoldQuantity()
}

// CreateItemInput representa el payload para crear un item.
// Nota: Price es string por precisión; se valida y parsea en el service.
// ProductID no viene del cliente: lo asigna el generador.
type CreateItemInput struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// UpdateItemInput representa el payload para editar un item.
// Todos los campos son obligatorios (la edición es total, no parcial);
// los punteros solo sirven para detectar campos ausentes en el JSON.
type UpdateItemInput struct {
	Barcode  *string `json:"barcode"`
	Name     *string `json:"name"`
	Price    *string `json:"price"`
	Quantity *int    `json:"quantity"`
}

// ListFilter restringe el listado según estado de venta.
type ListFilter string

const (
	FilterAll     ListFilter = "all"
	FilterSold    ListFilter = "sold"
	FilterNotSold ListFilter = "not_sold"
)

// ListSort define el orden del listado.
type ListSort string

const (
	SortName      ListSort = "name"
	SortPriceAsc  ListSort = "price_low_to_high"
	SortPriceDesc ListSort = "price_high_to_low"
)

package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DB es lo mínimo que el repositorio necesita del pool.
// Permite testear el repo con fakes sin levantar Postgres.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository accede a la tabla items.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de items.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// itemColumns es la proyección estándar de un item.
// price viaja como text y se parsea a decimal en el scan.
const itemColumns = `id, product_id, barcode, name, price::text, quantity, initial_quantity, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	var price string
	err := row.Scan(&item.ID, &item.ProductID, &item.Barcode, &item.Name, &price,
		&item.Quantity, &item.InitialQuantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}

	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Item{}, fmt.Errorf("parse price %q: %w", price, err)
	}

	return item, nil
}

// mapUniqueViolation traduce un 23505 al error de dominio según constraint.
// Postgres: unique_violation = 23505
func mapUniqueViolation(err error) error {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != "23505" {
		return err
	}
	switch pgError.ConstraintName {
	case "ux_items_barcode":
		return ErrorDuplicateBarcode
	case "ux_items_product_id":
		return ErrorDuplicateProductID
	default:
		return err
	}
}

// Insert crea un item con initial_quantity = quantity.
// Usamos RETURNING para obtener id y timestamps generados por DB.
// La unicidad de barcode/product_id la garantizan los índices unique:
// acá solo traducimos la violación a error de dominio.
func (repository *Repository) Insert(ctx context.Context, productID, barcode, name string, price decimal.Decimal, quantity int) (Item, error) {
	const query = `
		INSERT INTO items (product_id, barcode, name, price, quantity, initial_quantity)
		VALUES ($1, $2, $3, $4::numeric, $5, $5)
		RETURNING ` + itemColumns + `;
	`

	item, err := scanItem(repository.database.QueryRow(ctx, query, productID, barcode, name, price.StringFixed(2), quantity))
	if err != nil {
		return Item{}, mapUniqueViolation(err)
	}
	return item, nil
}

// GetByID obtiene un item por primary key.
func (repository *Repository) GetByID(ctx context.Context, id string) (Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id = $1;`
	return scanItem(repository.database.QueryRow(ctx, query, id))
}

// GetByCode resuelve un código escaneado: matchea product_id o barcode.
func (repository *Repository) GetByCode(ctx context.Context, code string) (Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE product_id = $1 OR barcode = $1;`
	return scanItem(repository.database.QueryRow(ctx, query, code))
}

// BarcodeExists consulta si un barcode ya está tomado.
func (repository *Repository) BarcodeExists(ctx context.Context, barcode string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM items WHERE barcode = $1);`
	var exists bool
	err := repository.database.QueryRow(ctx, query, barcode).Scan(&exists)
	return exists, err
}

// ProductIDExists consulta si un product id ya está tomado.
func (repository *Repository) ProductIDExists(ctx context.Context, productID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM items WHERE product_id = $1);`
	var exists bool
	err := repository.database.QueryRow(ctx, query, productID).Scan(&exists)
	return exists, err
}

// List devuelve items filtrados por estado de venta y ordenados.
// filter y sort llegan ya validados por el service; igual caemos a
// defaults seguros porque acá se arma SQL por concatenación.
func (repository *Repository) List(ctx context.Context, filter ListFilter, sort ListSort) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`

	switch filter {
	case FilterSold:
		query += ` WHERE quantity < initial_quantity`
	case FilterNotSold:
		query += ` WHERE quantity = initial_quantity`
	}

	switch sort {
	case SortPriceAsc:
		query += ` ORDER BY price ASC`
	case SortPriceDesc:
		query += ` ORDER BY price DESC`
	default:
		query += ` ORDER BY name ASC`
	}

	rows, err := repository.database.Query(ctx, query+";")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update reemplaza los campos editables. El baseline solo sube: GREATEST
// mantiene el invariante initial_quantity >= quantity en el mismo statement.
func (repository *Repository) Update(ctx context.Context, id, barcode, name string, price decimal.Decimal, quantity int) (Item, error) {
	const query = `
		UPDATE items
		SET barcode = $2, name = $3, price = $4::numeric, quantity = $5,
		    initial_quantity = GREATEST(initial_quantity, $5), updated_at = now()
		WHERE id = $1
		RETURNING ` + itemColumns + `;
	`

	item, err := scanItem(repository.database.QueryRow(ctx, query, id, barcode, name, price.StringFixed(2), quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, mapUniqueViolation(err)
	}
	return item, nil
}

// Purchase descuenta stock en un único UPDATE con guarda. El lock de fila
// del UPDATE serializa compras concurrentes: de dos compras que juntas
// exceden el stock, exactamente una pierde y no toca el registro.
func (repository *Repository) Purchase(ctx context.Context, id string, quantity int) (Item, error) {
	const query = `
		UPDATE items
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING ` + itemColumns + `;
	`

	item, err := scanItem(repository.database.QueryRow(ctx, query, id, quantity))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Item{}, err
	}

	// La guarda no matcheó: distinguimos "no existe" de "sin stock".
	if _, getErr := repository.GetByID(ctx, id); getErr != nil {
		if errors.Is(getErr, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, getErr
	}
	return Item{}, ErrorInsufficientStock
}

// Refund repone stock acotado por la cantidad vendida, misma técnica de
// guarda en el UPDATE que Purchase.
func (repository *Repository) Refund(ctx context.Context, id string, quantity int) (Item, error) {
	const query = `
		UPDATE items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND initial_quantity - quantity >= $2
		RETURNING ` + itemColumns + `;
	`

	item, err := scanItem(repository.database.QueryRow(ctx, query, id, quantity))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Item{}, err
	}

	if _, getErr := repository.GetByID(ctx, id); getErr != nil {
		if errors.Is(getErr, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, getErr
	}
	return Item{}, ErrorExcessRefund
}

// Delete elimina un item por ID.
func (repository *Repository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM items WHERE id = $1;`

	tag, err := repository.database.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// ResetInitialQuantities repara baselines corridos: sube initial_quantity
// hasta quantity donde quedó por debajo. Devuelve filas tocadas.
func (repository *Repository) ResetInitialQuantities(ctx context.Context) (int64, error) {
	const query = `
		UPDATE items
		SET initial_quantity = quantity, updated_at = now()
		WHERE initial_quantity < quantity;
	`

	tag, err := repository.database.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package items

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput       = errors.New("invalid input")
	ErrorInvalidQuantity    = errors.New("quantity must be positive")
	ErrorInsufficientStock  = errors.New("insufficient stock")
	ErrorExcessRefund       = errors.New("refund exceeds sold quantity")
	ErrorDuplicateBarcode   = errors.New("duplicate barcode")
	ErrorDuplicateProductID = errors.New("duplicate product id")
	ErrorNotFound           = errors.New("item not found")
)

// Reintentos de insert ante colisión de product id. El índice unique en DB
// es quien reporta la colisión; acá solo regeneramos y volvemos a intentar.
const createAttempts = 5

var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// RepositoryAPI define lo que el service necesita del repositorio.
// Permite testear el service con fakes sin tocar DB.
type RepositoryAPI interface {
	Insert(ctx context.Context, productID, barcode, name string, price decimal.Decimal, quantity int) (Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	GetByCode(ctx context.Context, code string) (Item, error)
	List(ctx context.Context, filter ListFilter, sort ListSort) ([]Item, error)
	Update(ctx context.Context, id, barcode, name string, price decimal.Decimal, quantity int) (Item, error)
	Purchase(ctx context.Context, id string, quantity int) (Item, error)
	Refund(ctx context.Context, id string, quantity int) (Item, error)
	Delete(ctx context.Context, id string) error
	ResetInitialQuantities(ctx context.Context) (int64, error)
}

// CodesAPI define lo que el service necesita del generador de identificadores.
type CodesAPI interface {
	Barcode(ctx context.Context) (string, error)
	ProductID(ctx context.Context) (string, error)
}

// Service contiene las reglas de negocio del stock:
// alta, compra, refund, edición y derivados para reportes.
type Service struct {
	repository RepositoryAPI
	codes      CodesAPI
	logger     *zap.Logger
}

// NewService crea un service de items.
func NewService(repository RepositoryAPI, codes CodesAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repository: repository, codes: codes, logger: logger}
}

// parsePrice valida formato y devuelve el decimal. El regex refuerza lo que
// la DB ya exige (numeric(10,2) no negativo).
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if !pricePattern.MatchString(raw) {
		return decimal.Decimal{}, ErrorInvalidInput
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, ErrorInvalidInput
	}
	return price, nil
}

// Create valida reglas y crea el item en DB.
// El product id lo asigna el generador; si el insert choca con el índice
// unique de product_id regeneramos (acotado). Un choque de barcode es input
// del usuario y se devuelve tal cual.
func (service *Service) Create(ctx context.Context, input CreateItemInput) (Item, error) {
	// Normalización mínima.
	input.Barcode = strings.TrimSpace(input.Barcode)
	input.Name = strings.TrimSpace(input.Name)

	if !barcodePattern.MatchString(input.Barcode) {
		return Item{}, ErrorInvalidInput
	}
	if input.Name == "" {
		return Item{}, ErrorInvalidInput
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return Item{}, err
	}
	if input.Quantity < 0 {
		return Item{}, ErrorInvalidInput
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		productID, err := service.codes.ProductID(ctx)
		if err != nil {
			return Item{}, err
		}

		item, err := service.repository.Insert(ctx, productID, input.Barcode, input.Name, price, input.Quantity)
		if errors.Is(err, ErrorDuplicateProductID) {
			continue
		}
		if err != nil {
			return Item{}, err
		}

		service.logger.Info("item created",
			zap.String("item_id", item.ID),
			zap.String("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity))
		return item, nil
	}

	return Item{}, ErrorDuplicateProductID
}

// Get obtiene un item por ID.
// Nota: el service no valida formato UUID; eso es más de HTTP/entrada (handler).
func (service *Service) Get(ctx context.Context, id string) (Item, error) {
	item, err := service.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// Lookup resuelve un código escaneado (product id o barcode) a un item.
func (service *Service) Lookup(ctx context.Context, code string) (Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Item{}, ErrorInvalidInput
	}

	item, err := service.repository.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// List devuelve items según filtro de venta y orden. Valores desconocidos
// caen a defaults (all / name), igual que hacía el dashboard original.
func (service *Service) List(ctx context.Context, filter ListFilter, sort ListSort) ([]Item, error) {
	switch filter {
	case FilterSold, FilterNotSold:
	default:
		filter = FilterAll
	}
	switch sort {
	case SortPriceAsc, SortPriceDesc:
	default:
		sort = SortName
	}
	return service.repository.List(ctx, filter, sort)
}

// Purchase descuenta stock y devuelve el item actualizado más el total
// (price × cantidad). La atomicidad frente a compras concurrentes la da el
// UPDATE con guarda del repositorio.
func (service *Service) Purchase(ctx context.Context, id string, quantity int) (Item, decimal.Decimal, error) {
	if quantity <= 0 {
		return Item{}, decimal.Decimal{}, ErrorInvalidQuantity
	}

	item, err := service.repository.Purchase(ctx, id, quantity)
	if err != nil {
		return Item{}, decimal.Decimal{}, err
	}

	total := item.Price.Mul(decimal.NewFromInt(int64(quantity)))
	service.logger.Info("purchase applied",
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Quantity),
		zap.String("total", total.StringFixed(2)))
	return item, total, nil
}

// Refund repone stock, acotado por la cantidad vendida.
func (service *Service) Refund(ctx context.Context, id string, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrorInvalidQuantity
	}

	item, err := service.repository.Refund(ctx, id, quantity)
	if err != nil {
		return Item{}, err
	}

	service.logger.Info("refund applied",
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Quantity))
	return item, nil
}

// Edit valida y reemplaza los campos del item. La edición es total: los
// cuatro campos deben venir. El baseline sube solo (lo resuelve el UPDATE).
func (service *Service) Edit(ctx context.Context, id string, input UpdateItemInput) (Item, error) {
	if input.Barcode == nil || input.Name == nil || input.Price == nil || input.Quantity == nil {
		return Item{}, ErrorInvalidInput
	}

	barcode := strings.TrimSpace(*input.Barcode)
	name := strings.TrimSpace(*input.Name)

	if !barcodePattern.MatchString(barcode) {
		return Item{}, ErrorInvalidInput
	}
	if name == "" {
		return Item{}, ErrorInvalidInput
	}
	price, err := parsePrice(*input.Price)
	if err != nil {
		return Item{}, err
	}
	if *input.Quantity < 0 {
		return Item{}, ErrorInvalidInput
	}

	return service.repository.Update(ctx, id, barcode, name, price, *input.Quantity)
}

// Delete elimina un item por ID.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}

// NewBarcode expone el generador para la UI de alta (pre-carga un barcode
// checksum-válido que no colisiona).
func (service *Service) NewBarcode(ctx context.Context) (string, error) {
	return service.codes.Barcode(ctx)
}

// ResetInitialQuantities repara baselines (operación de mantenimiento).
func (service *Service) ResetInitialQuantities(ctx context.Context) (int64, error) {
	touched, err := service.repository.ResetInitialQuantities(ctx)
	if err != nil {
		return 0, err
	}
	if touched > 0 {
		service.logger.Info("initial quantities reset", zap.Int64("items", touched))
	}
	return touched, nil
}

package items

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
)

// Alfabeto de product ids: mayúsculas + dígitos, 6 posiciones.
const productIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	productIDLength = 6
	barcodeLength   = 13

	// Cota de reintentos: la probabilidad de colisión es astronómicamente
	// baja, pero un predicado patológico no debe colgar el proceso.
	maxGenerateAttempts = 100
)

var barcodePattern = regexp.MustCompile(`^\d{13}$`)

// ErrorGenerateExhausted indica que el generador agotó sus intentos.
// En la práctica solo ocurre con un predicado de existencia roto.
var ErrorGenerateExhausted = errors.New("identifier generation exhausted attempts")

// ExistsFunc consulta si un valor ya está tomado en storage.
type ExistsFunc func(ctx context.Context, value string) (bool, error)

// CodeGenerator produce barcodes y product ids únicos contra el set actual
// de items. El chequeo de existencia es consultivo: la garantía real es el
// índice unique en DB, que reporta la colisión en el insert.
type CodeGenerator struct {
	intN            func(n int) int
	barcodeExists   ExistsFunc
	productIDExists ExistsFunc
}

// NewCodeGenerator crea un generador respaldado por el repositorio.
func NewCodeGenerator(repository *Repository) *CodeGenerator {
	return &CodeGenerator{
		intN:            rand.Intn,
		barcodeExists:   repository.BarcodeExists,
		productIDExists: repository.ProductIDExists,
	}
}

// NewCodeGeneratorWithSource permite inyectar la fuente aleatoria y los
// predicados. Los tests usan una fuente determinística para reproducir
// colisiones.
func NewCodeGeneratorWithSource(intN func(n int) int, barcodeExists, productIDExists ExistsFunc) *CodeGenerator {
	return &CodeGenerator{
		intN:            intN,
		barcodeExists:   barcodeExists,
		productIDExists: productIDExists,
	}
}

// CheckDigit calcula el dígito verificador mod-10 sobre 12 dígitos:
// peso 1 en índices pares, peso 3 en impares (índices 0-based).
func CheckDigit(digits string) (int, error) {
	if len(digits) != barcodeLength-1 {
		return 0, fmt.Errorf("check digit requires %d digits, got %d", barcodeLength-1, len(digits))
	}

	total := 0
	for index, character := range digits {
		if character < '0' || character > '9' {
			return 0, fmt.Errorf("check digit requires numeric input, got %q", digits)
		}
		digit := int(character - '0')
		if index%2 == 0 {
			total += digit
		} else {
			total += digit * 3
		}
	}

	return (10 - (total % 10)) % 10, nil
}

// ValidBarcode informa si un código tiene 13 dígitos y checksum correcto.
func ValidBarcode(code string) bool {
	if !barcodePattern.MatchString(code) {
		return false
	}
	check, err := CheckDigit(code[:barcodeLength-1])
	if err != nil {
		return false
	}
	return code[barcodeLength-1] == byte('0'+check)
}

// Barcode genera un barcode de 13 dígitos con checksum válido que no
// colisiona con los existentes al momento de la consulta.
func (generator *CodeGenerator) Barcode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		digits := make([]byte, 0, barcodeLength)
		for len(digits) < barcodeLength-1 {
			digits = append(digits, byte('0'+generator.intN(10)))
		}

		check, err := CheckDigit(string(digits))
		if err != nil {
			return "", err
		}
		candidate := string(append(digits, byte('0'+check)))

		taken, err := generator.barcodeExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrorGenerateExhausted
}

// ProductID genera un código alfanumérico de 6 caracteres que no colisiona
// con los existentes al momento de la consulta.
func (generator *CodeGenerator) ProductID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code := make([]byte, 0, productIDLength)
		for len(code) < productIDLength {
			code = append(code, productIDAlphabet[generator.intN(len(productIDAlphabet))])
		}
		candidate := string(code)

		taken, err := generator.productIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrorGenerateExhausted
}

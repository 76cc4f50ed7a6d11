// Package checkout modela el borrador de compra: el valor transitorio que
// viaja entre el paso "purchase" (elegir cantidad) y el paso "payment"
// (aplicar la compra). Es un token firmado con expiración que el cliente
// conserva; el servidor no guarda estado entre pasos.
package checkout

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// DefaultTTL es la vida útil de un borrador si la config no dice otra cosa.
const DefaultTTL = 15 * time.Minute

var (
	// ErrorInvalidDraft cubre tokens malformados o con firma ajena.
	ErrorInvalidDraft = errors.New("invalid purchase draft")
	// ErrorExpiredDraft indica que el borrador venció; el caller reinicia la compra.
	ErrorExpiredDraft = errors.New("purchase draft expired")
)

// Draft es el contenido verificado de un borrador de compra.
type Draft struct {
	ItemID     string          `json:"item_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

type draftClaims struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
	jwt.RegisteredClaims
}

// Signer emite y verifica borradores de compra.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner crea un firmante de borradores. ttl <= 0 usa DefaultTTL.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue firma un borrador para item/cantidad/total dados.
// Devuelve también el Draft para que el handler lo muestre al cliente.
func (signer *Signer) Issue(itemID string, quantity int, total decimal.Decimal) (Draft, string, error) {
	issued := signer.now()
	expires := issued.Add(signer.ttl)

	claims := draftClaims{
		ItemID:   itemID,
		Quantity: quantity,
		Total:    total.StringFixed(2),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secret)
	if err != nil {
		return Draft{}, "", err
	}

	return Draft{
		ItemID:     itemID,
		Quantity:   quantity,
		TotalPrice: total,
		ExpiresAt:  expires,
	}, token, nil
}

// Verify valida firma y expiración y devuelve el borrador.
// Cualquier problema de firma/estructura es ErrorInvalidDraft; el
// vencimiento se distingue para que la UI pueda reiniciar el flujo.
func (signer *Signer) Verify(token string) (Draft, error) {
	var claims draftClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(token *jwt.Token) (any, error) { return signer.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(signer.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Draft{}, ErrorExpiredDraft
		}
		return Draft{}, ErrorInvalidDraft
	}

	if claims.ItemID == "" || claims.Quantity <= 0 {
		return Draft{}, ErrorInvalidDraft
	}
	total, err := decimal.NewFromString(claims.Total)
	if err != nil {
		return Draft{}, ErrorInvalidDraft
	}

	return Draft{
		ItemID:     claims.ItemID,
		Quantity:   claims.Quantity,
		TotalPrice: total,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

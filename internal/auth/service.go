package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Errores de dominio. El mensaje de credenciales es uniforme a propósito:
// no se distingue "usuario inexistente" de "password incorrecto".
var (
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrorInvalidInput       = errors.New("invalid input")
)

// RepositoryAPI define lo que el service necesita del repositorio de usuarios.
type RepositoryAPI interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	Insert(ctx context.Context, username, passwordHash string, isAdmin bool) (User, error)
}

// Service autentica cuentas contra hashes bcrypt.
type Service struct {
	repository RepositoryAPI
	logger     *zap.Logger
}

// NewService crea un service de auth.
func NewService(repository RepositoryAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repository: repository, logger: logger}
}

// Login valida credenciales y devuelve la cuenta.
func (service *Service) Login(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrorInvalidCredentials
	}

	user, err := service.repository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrorInvalidCredentials
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrorInvalidCredentials
	}

	service.logger.Info("login", zap.String("username", user.Username), zap.Bool("is_admin", user.IsAdmin))
	return user, nil
}

// CreateUser da de alta una cuenta con el password hasheado.
// Lo usa el CLI de mantenimiento (seed de admin y create-admin).
func (service *Service) CreateUser(ctx context.Context, username, password string, isAdmin bool) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrorInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return service.repository.Insert(ctx, username, string(hash), isAdmin)
}

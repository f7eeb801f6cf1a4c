package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
	"github.com/jhoicas/paytrack-api/internal/domain/repository"
	"github.com/jhoicas/paytrack-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// BootstrapConfig credenciales del administrador inicial.
type BootstrapConfig struct {
	LoginID  string
	Password string
	Name     string
}

// AuthUseCase emite y verifica sesiones, y crea el administrador inicial.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtCfg    JWTConfig
	bootstrap BootstrapConfig
	limiter   LoginLimiter
	now       func() time.Time
}

// Option personaliza el AuthUseCase.
type Option func(*AuthUseCase)

// WithLoginLimiter activa el límite de intentos fallidos.
func WithLoginLimiter(l LoginLimiter) Option {
	return func(uc *AuthUseCase) {
		if l != nil {
			uc.limiter = l
		}
	}
}

// WithBootstrap fija las credenciales del administrador inicial.
func WithBootstrap(cfg BootstrapConfig) Option {
	return func(uc *AuthUseCase) { uc.bootstrap = cfg }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		bootstrap: BootstrapConfig{
			LoginID:  "admin",
			Password: "admin123",
			Name:     "System Administrator",
		},
		limiter: noopLimiter{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Login verifica login id y password, genera el JWT y devuelve token + usuario.
// Login id inexistente y password incorrecto responden igual: ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	loginID := strings.TrimSpace(in.LoginID)
	if loginID == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := uc.limiter.Allowed(ctx, loginID)
	if err != nil {
		// Si el limitador falla no se bloquea el login.
		log.Warn().Err(err).Msg("limitador de login no disponible")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := uc.userRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		VerifyPassword(string(dummyHash), in.Password)
		uc.recordFailure(ctx, loginID)
		return nil, domain.ErrInvalidCredentials
	}
	if !VerifyPassword(user.PasswordHash, in.Password) {
		uc.recordFailure(ctx, loginID)
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.limiter.Reset(ctx, loginID); err != nil {
		log.Warn().Err(err).Str("login_id", loginID).Msg("reset del limitador de login")
	}

	ttl := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, ttl)
	if err != nil {
		return nil, fmt.Errorf("firmar token: %w", err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        *ToUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) recordFailure(ctx context.Context, loginID string) {
	if err := uc.limiter.RecordFailure(ctx, loginID); err != nil {
		log.Warn().Err(err).Str("login_id", loginID).Msg("registrar intento fallido")
	}
}

// Authenticate valida el token y carga el usuario actual desde el almacén.
// Firma inválida, token expirado o usuario inexistente → ErrUnauthenticated.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: el usuario ya no existe", domain.ErrUnauthenticated)
	}
	return user, nil
}

// BootstrapAdmin crea el administrador inicial con las credenciales configuradas.
// Falla con ErrAdminExists si ya hay algún admin; nunca crea un segundo.
func (uc *AuthUseCase) BootstrapAdmin(ctx context.Context) (*dto.BootstrapResponse, error) {
	hash, err := HashPassword(uc.bootstrap.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	admin := &entity.User{
		ID:           uuid.New().String(),
		LoginID:      uc.bootstrap.LoginID,
		Name:         uc.bootstrap.Name,
		Role:         entity.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.CreateFirstAdmin(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrAdminExists) {
			return nil, domain.ErrAdminExists
		}
		return nil, err
	}
	log.Info().Str("user_id", admin.LoginID).Msg("administrador inicial creado")
	return &dto.BootstrapResponse{
		Message:  "administrador inicial creado",
		LoginID:  admin.LoginID,
		Password: uc.bootstrap.Password,
	}, nil
}

// ToUserResponse convierte la entidad en su representación pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		LoginID:   u.LoginID,
		Name:      u.Name,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		CreatedBy: u.CreatedBy,
		CreatedAt: u.CreatedAt,
	}
}

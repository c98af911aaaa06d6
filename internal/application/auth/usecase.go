package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/application/session"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/domain/repository"
	"github.com/jhoicas/commodities-cms/pkg/jwt"
	"github.com/jhoicas/commodities-cms/pkg/logger"
	"github.com/jhoicas/commodities-cms/pkg/validator"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, logout y resolución de sesiones HTTP.
// Cada login abre una sesión con id propio; la identidad se guarda en el store bajo
// session.KeyFor(id) y el token firmado lleva ese id. Logout borra la clave y el token
// deja de servir aunque no haya expirado.
type AuthUseCase struct {
	dir     repository.CredentialDirectory
	store   repository.SessionStore
	jwtCfg  JWTConfig
	latency time.Duration
	log     *logger.Logger
	newID   func() string
}

// NewAuthUseCase construye el caso de uso de auth. latency es la demora simulada del login.
func NewAuthUseCase(dir repository.CredentialDirectory, store repository.SessionStore, jwtCfg JWTConfig, latency time.Duration, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		dir: dir, store: store, jwtCfg: jwtCfg, latency: latency, log: log,
		newID: func() string { return uuid.New().String() },
	}
}

// Login verifica email/password, abre la sesión y retorna token + identidad.
// Credenciales sin coincidencia devuelven domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if errs := validator.ValidateStruct(in); errs != nil {
		return nil, errs
	}
	sid := uc.newID()
	h := uc.holder(sid)
	id, err := h.Login(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.log.Warn().Str("email", in.Email).Msg("login rechazado")
		}
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:    id.ID,
		Email:     id.Email,
		Name:      id.Name,
		Role:      string(id.Role),
		SessionID: sid,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		// Sin token la sesión guardada queda huérfana.
		_ = h.Logout(ctx)
		return nil, fmt.Errorf("firmar token: %w", err)
	}

	uc.log.Info().Int64("user_id", id.ID).Str("role", string(id.Role)).Str("session_id", sid).Msg("login")
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: ToIdentityResponse(id)}, nil
}

// Logout cierra la sesión. Cerrar una sesión inexistente no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.holder(sessionID).Logout(ctx); err != nil {
		return err
	}
	uc.log.Info().Str("session_id", sessionID).Msg("logout")
	return nil
}

// Resolve restaura la identidad de la sesión. ok=false si la sesión no existe, venció o
// tenía datos inválidos.
func (uc *AuthUseCase) Resolve(ctx context.Context, sessionID string) (entity.Identity, bool, error) {
	if sessionID == "" {
		return entity.Identity{}, false, nil
	}
	return uc.holder(sessionID).Restore(ctx)
}

// Me identidad y permisos derivados del rol.
func (uc *AuthUseCase) Me(id entity.Identity) dto.MeResponse {
	return dto.MeResponse{
		User:          ToIdentityResponse(id),
		CanModify:     id.Role.CanModifyCatalog(),
		CanViewReport: id.Role.CanViewDashboard(),
	}
}

func (uc *AuthUseCase) holder(sessionID string) *session.Holder {
	return session.NewHolder(uc.dir, uc.store, session.Config{Key: session.KeyFor(sessionID), Latency: uc.latency})
}

// ToIdentityResponse identidad sin password.
func ToIdentityResponse(id entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{ID: id.ID, Email: id.Email, Role: string(id.Role), Name: id.Name}
}

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the admin auth controller.
type Service interface {
	AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type service struct {
	passwordHash string
	jwtCfg       config.JWTConfig
	logg         *logger.Logger
	now          func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	PasswordHash string
	JWTConfig    config.JWTConfig
	Logger       *logger.Logger
}

// NewService constructs the admin login service.
func NewService(params ServiceParams) (Service, error) {
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, fmt.Errorf("admin password hash is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		passwordHash: params.PasswordHash,
		jwtCfg:       params.JWTConfig,
		logg:         logg,
		now:          time.Now,
	}, nil
}

// AdminLogin verifies the shared admin password and mints a bearer token.
func (s *service) AdminLogin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	ok, err := security.VerifyPassword(req.Password, s.passwordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify admin password")
	}
	if !ok {
		s.logg.Warn(ctx, "admin.login_failed")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, expiresAt, err := pkgAuth.MintAdminToken(s.jwtCfg, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token")
	}
	s.logg.Info(ctx, "admin.login")
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

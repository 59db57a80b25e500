package commands

import (
	"context"
	"log/slog"

	reqdto "notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
	"notify-dispatch/internal/pkg/jwt"
	"notify-dispatch/internal/pkg/password"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrCredentialInactive = errs.New("credential inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type TokenResult struct {
	Token  string
	Scopes []string
}

type AuthCommands interface {
	IssueToken(ctx context.Context, req reqdto.TokenRequest) (*TokenResult, error)
}

type authCommandsImpl struct {
	creds      CredentialRepository
	jwtService *jwt.Service
	clock      clock.Clock
	slogger    *slog.Logger
}

func NewAuthCommands(creds CredentialRepository, jwtService *jwt.Service, clk clock.Clock, slogger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		creds:      creds,
		jwtService: jwtService,
		clock:      clk,
		slogger:    slogger,
	}
}

// IssueToken exchanges a service credential for a scoped bearer token.
func (a *authCommandsImpl) IssueToken(ctx context.Context, req reqdto.TokenRequest) (*TokenResult, error) {
	cred, err := a.creds.FindByTenantService(ctx, req.TenantID, req.Service)
	if err != nil {
		// Same error as a secret mismatch to prevent credential enumeration
		return nil, ErrInvalidCredentials
	}

	if err := cred.EnsureUsable(); err != nil {
		return nil, ErrCredentialInactive
	}

	if err := password.ComparePassword(cred.SecretHash(), req.Secret); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(cred.TenantID(), cred.Service(), cred.Scopes())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if err := a.creds.TouchLastUsed(ctx, cred.ID(), a.clock.Now()); err != nil {
		a.slogger.Warn("failed to update credential last use", "credential_id", cred.ID().String(), "error", err)
		// Continue without failing - the token was issued
	}

	return &TokenResult{Token: token, Scopes: cred.Scopes()}, nil
}

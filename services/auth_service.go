package services

import (
	"context"
	"errors"
	"maroon_shop/lib"
	"maroon_shop/repositories"
	"maroon_shop/structs"

	"github.com/MonkyMars/gecho"
)

// AuthService issues the web session. It identifies a customer; it does not authenticate one.
type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	customers    *repositories.CustomerRepository
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, customers *repositories.CustomerRepository, cache *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		customers:    customers,
		cacheService: cache,
	}
}

// Login issues a session token for an existing customer.
func (as *AuthService) Login(ctx context.Context, customerID int64) (string, *structs.SessionClaims, error) {
	if customerID < 1 {
		return "", nil, lib.NewValidationError("customerId", "Customer Id is required.")
	}

	if _, err := as.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return "", nil, lib.NewValidationError("customerId", "No customer exists with that id.")
		}
		return "", nil, err
	}

	token, claims, err := lib.SignSessionToken(customerID, as.cfg.Auth.SessionExpiry, as.cfg.Auth.SessionSecret)
	if err != nil {
		as.logger.Error("Failed to sign session token", gecho.Field("error", err))
		return "", nil, err
	}

	as.logger.Info("Customer session started", gecho.Field("customer_id", customerID))
	return token, claims, nil
}

// Authenticate verifies a session token and rejects revoked ones.
func (as *AuthService) Authenticate(ctx context.Context, token string) (*structs.SessionClaims, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.SessionSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := as.cacheService.IsTokenBlacklisted(ctx, claims.Jti)
	if err != nil {
		// An unreachable cache must not lock everybody out.
		as.logger.Warn("Failed to check session blacklist", gecho.Field("error", err))
	}
	if revoked {
		return nil, lib.ErrRevokedToken
	}
	return claims, nil
}

// Logout revokes the session until it would have expired.
func (as *AuthService) Logout(ctx context.Context, claims *structs.SessionClaims) error {
	if claims == nil {
		return nil
	}
	if err := as.cacheService.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Warn("Failed to blacklist session", gecho.Field("error", err))
		return err
	}
	return nil
}

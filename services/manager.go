package services

import (
	"maroon_shop/database"
	"maroon_shop/repositories"
	"maroon_shop/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	Repositories    *repositories.Manager
	AuthService     *AuthService
	EmailService    *EmailService
	CacheService    *CacheService
	HealthService   *HealthService
	BasketService   *BasketService
	CheckoutService *CheckoutService
	SeedService     *SeedService
}

// NewServiceManager wires every service on db. Extra notifiers (the broker publisher)
// are told about placed orders after the confirmation email.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, notifiers ...OrderNotifier) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	repos := repositories.NewManager(db, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, cfg, db, cacheService)
	authService := NewAuthService(cfg, logger, repos.Customers, cacheService)
	basketService := NewBasketService(logger, db, repos)

	orderNotifiers := []OrderNotifier{}
	if emailService.Enabled() {
		orderNotifiers = append(orderNotifiers, emailService)
	}
	orderNotifiers = append(orderNotifiers, notifiers...)
	checkoutService := NewCheckoutService(logger, db, repos, orderNotifiers...)
	seedService := NewSeedService(logger, db, repos, basketService, checkoutService)

	return &ServiceManager{
		Repositories:    repos,
		AuthService:     authService,
		EmailService:    emailService,
		CacheService:    cacheService,
		HealthService:   healthService,
		BasketService:   basketService,
		CheckoutService: checkoutService,
		SeedService:     seedService,
	}
}

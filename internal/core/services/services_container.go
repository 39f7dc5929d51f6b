package services

import (
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/teller_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Teller = NewTellerService(
		repos,
		WithOverdraftFloors(OverdraftFloors{
			domain.Checking: cfg.OverdraftFloorChecking,
			domain.Savings:  cfg.OverdraftFloorSavings,
		}),
		WithStoreTimeout(cfg.StoreTimeout),
	)

	return container
}

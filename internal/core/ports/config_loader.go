package ports

import "go.trai.ch/mazerepair/internal/core/domain"

// ConfigLoader defines the interface for loading profile based configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load merges the configuration sources for the given profiles and binds the result.
	Load(profiles []string) (*domain.Settings, error)
}

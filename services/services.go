package services

import (
	"context"

	"membership-console/dal"
	"membership-console/models"
	"membership-console/utils"
	"membership-console/utils/logger"
)

// Services bundles the console's core services, wired once at startup.
type Services struct {
	RefData    *RefDataService
	Resolver   *Resolver
	Registries map[string]*Registry
	Sessions   *FormSessionService
	Export     *ExportService
}

// NewServices wires the core: reference data and its resolver, one
// registry per entity kind, form sessions and export. Reference data
// starts loading immediately; registries are fetched lazily on first use
// (the reference load must settle first so the name join has data).
func NewServices(ctx context.Context, client dal.RegistryClientInterface, log logger.Logger) *Services {
	refData := NewRefDataService(client, log)
	resolver := NewResolver(refData)

	registries := make(map[string]*Registry)
	for kindKey, kind := range models.EntityKinds() {
		registries[kindKey] = NewRegistry(kind, client, resolver, log)
	}

	sessions := NewFormSessionService(registries, resolver, utils.NewIDGenerator(), log)

	go refData.Load(ctx)

	return &Services{
		RefData:    refData,
		Resolver:   resolver,
		Registries: registries,
		Sessions:   sessions,
		Export:     NewExportService(log),
	}
}

// Registry returns the registry for a console kind segment.
func (s *Services) Registry(kind string) (*Registry, error) {
	reg, ok := s.Registries[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return reg, nil
}

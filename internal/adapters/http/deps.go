package http

import (
	"github.com/nats-io/nats.go"

	"github.com/Jeong-wonho/heremap-start/internal/adapters/postgres"
	"github.com/Jeong-wonho/heremap-start/internal/adapters/valkey"
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/core/usecases"
)

// RegionCatalog lists the geofence region keys offered to clients.
type RegionCatalog interface {
	Keys() []string
}

// SessionConfig configures every map session opened on /ws.
type SessionConfig struct {
	Controller usecases.ControllerConfig
	Viewport   domain.Viewport
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locations *usecases.LocationService
	Gateway   *usecases.ServiceGateway
	Clusterer ports.Clusterer
	Regions   RegionCatalog
	Feed      ports.PanelFeed
	Session   SessionConfig
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}

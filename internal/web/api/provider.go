package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/tmviz/kestrel/internal/conf"
	"github.com/tmviz/kestrel/internal/core/conductor"
	"github.com/tmviz/kestrel/internal/core/telemetry"
	"github.com/tmviz/kestrel/internal/core/telemetry/store/telemetrydb"
	"github.com/tmviz/kestrel/internal/core/timesystem"
	"github.com/tmviz/kestrel/pkg/bus"
	"gorm.io/gorm"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(Usecase), "*"),
	NewHTTPHandler,
	NewBus,
	NewConductor,
	NewTimeSystemRegistry,
	NewConductorAPI,
	NewTelemetryStore, NewTelemetryCore, NewTelemetryAPI,
	NewCollector,
)

type Usecase struct {
	Conf         *conf.Bootstrap
	Log          *slog.Logger
	DB           *gorm.DB
	ConductorAPI ConductorAPI
	TelemetryAPI TelemetryAPI
	Collector    *telemetry.Collector
}

// NewHTTPHandler builds the gin router.
func NewHTTPHandler(uc *Usecase) http.Handler {
	cfg := uc.Conf.Server
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()
	g.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"msg": "no such route"})
	})
	if cfg.HTTP.PProf.Enabled {
		web.SetupPProf(g, &cfg.HTTP.PProf.AccessIps)
	}

	setupRouter(g, uc)
	return g
}

// NewBus creates the notification bus shared by the conductor and every
// subscriber surface.
func NewBus() *bus.Bus {
	return bus.New()
}

// NewConductor creates the serialized time conductor. State starts fully
// unset; views select a time system and bounds after connecting.
func NewConductor(b *bus.Bus) *conductor.Serialized {
	return conductor.NewSerialized(conductor.NewCore(b))
}

// NewTimeSystemRegistry seeds the catalog from configuration.
func NewTimeSystemRegistry(bc *conf.Bootstrap) *timesystem.Registry {
	systems := make([]timesystem.TimeSystem, 0, len(bc.Server.TimeSystems))
	for _, ts := range bc.Server.TimeSystems {
		systems = append(systems, timesystem.TimeSystem{
			Key:            ts.Key,
			Name:           ts.Name,
			TimeFormat:     ts.TimeFormat,
			DurationFormat: ts.DurationFormat,
		})
	}
	return timesystem.NewRegistry(systems...)
}

// NewTelemetryStore creates the sample persistence layer.
func NewTelemetryStore(db *gorm.DB) telemetry.Storer {
	return telemetrydb.NewDB(db).AutoMigrate(true)
}

// NewTelemetryCore creates the sample domain service and starts its
// retention worker.
func NewTelemetryCore(store telemetry.Storer, bc *conf.Bootstrap) telemetry.Core {
	core := telemetry.NewCore(store, telemetry.WithConfig(&bc.Server.Telemetry))
	go core.StartCleanupWorker(context.Background())
	return core
}

// NewCollector wires the host metrics collector to the conductor so it can
// drive follow mode.
func NewCollector(core telemetry.Core, cond *conductor.Serialized, bc *conf.Bootstrap) *telemetry.Collector {
	return telemetry.NewCollector(core, cond, &bc.Server.Telemetry)
}

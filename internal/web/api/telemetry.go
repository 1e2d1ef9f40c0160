package api

import (
	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/tmviz/kestrel/internal/core/telemetry"
)

type TelemetryAPI struct {
	telemetryCore telemetry.Core
}

func NewTelemetryAPI(core telemetry.Core) TelemetryAPI {
	return TelemetryAPI{telemetryCore: core}
}

func RegisterTelemetry(g gin.IRouter, api TelemetryAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/telemetry", handler...)
	group.GET("/samples", web.WrapH(api.findSamples))
	group.POST("/samples", web.WrapH(api.addSample))
}

func (a TelemetryAPI) findSamples(c *gin.Context, in *telemetry.FindSamplesInput) (gin.H, error) {
	items, total, err := a.telemetryCore.FindSamples(c.Request.Context(), in)
	if err != nil {
		return nil, err
	}
	return gin.H{"items": items, "total": total}, nil
}

func (a TelemetryAPI) addSample(c *gin.Context, in *telemetry.AddSampleInput) (*telemetry.Sample, error) {
	return a.telemetryCore.AddSample(c.Request.Context(), in)
}

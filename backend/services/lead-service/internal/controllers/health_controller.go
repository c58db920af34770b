package controllers

import (
	"net/http"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/app"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/dtos"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

// HealthCheckHandler fails only when the store is down. An unreachable
// backend is reported but does not make the gateway unhealthy.
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.Store.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("lead-service store unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Store unreachable", nil, err)
		return
	}

	resp := dtos.HealthCheckResponse{Status: "OK", Backend: "OK"}
	if err := c.app.Backend.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Warn("tree-services backend unreachable")
		resp.Backend = "unreachable"
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

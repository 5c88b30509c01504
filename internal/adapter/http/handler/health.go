package handler

import (
	"net/http"

	"github.com/transpo-mobility/fare-engine/pkg/logger"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

type TariffVersioner interface {
	Version() string
}

type Health struct {
	serviceName string
	tariffs     TariffVersioner
	log         logger.Logger
}

func NewHealth(serviceName string, tariffs TariffVersioner, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		tariffs:     tariffs,
		log:         log,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the service and the active tariff revision
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	response := envelope{
		"status": "available",
		"system_info": map[string]string{
			"service-name":   a.serviceName,
			"tariff_version": a.tariffs.Version(),
		},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}

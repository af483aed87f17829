package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wires every handler onto a stdlib ServeMux behind the bearer
// auth check. The health probe is the only unauthenticated route.
type Router struct {
	mux    *http.ServeMux
	auth   http.Handler
	logger *zap.Logger
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Projects    *ProjectHandler
	Locations   *LocationHandler
	DeviceTypes *DeviceTypeHandler
	Devices     *DeviceHandler
	Sensors     *SensorHandler
	Readings    *ReadingHandler
	Alerts      *AlertHandler
	Maintenance *MaintenanceHandler
	Users       *UserHandler
	Firmware    *FirmwareHandler
	Stats       *StatsHandler
}

func NewRouter(h Handlers, token string, logger *zap.Logger) *Router {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", handleHealth)

	mux.Handle("/api/v1/projects", h.Projects)
	mux.Handle("/api/v1/projects/summary", h.Projects)

	mux.Handle("/api/v1/locations", h.Locations)
	mux.Handle("/api/v1/locations/stats", h.Locations)

	mux.Handle("/api/v1/device-types", h.DeviceTypes)

	mux.Handle("/api/v1/devices", h.Devices)
	mux.Handle("/api/v1/devices/export", h.Devices)

	mux.Handle("/api/v1/sensors", h.Sensors)
	mux.Handle("/api/v1/sensors/analytics", h.Sensors)

	mux.Handle("/api/v1/readings", h.Readings)

	mux.Handle("/api/v1/alerts", h.Alerts)
	mux.Handle("/api/v1/alerts/", h.Alerts)

	mux.Handle("/api/v1/maintenance", h.Maintenance)
	mux.Handle("/api/v1/technicians/performance", h.Maintenance)

	mux.Handle("/api/v1/users", h.Users)

	mux.Handle("/api/v1/firmware", h.Firmware)
	mux.Handle("/api/v1/firmware/devices", h.Firmware)

	mux.Handle("/api/v1/stats", h.Stats)
	mux.Handle("/api/v1/dashboard/metrics", h.Stats)

	return &Router{
		mux:    mux,
		auth:   requireAuth(token, mux),
		logger: logger,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.auth.ServeHTTP(w, req)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package routes

import (
	"net/http"

	swaggerHandler "github.com/swaggo/http-swagger"

	_ "github.com/oggyb/greenapi-notifier/internal/docs" // swagger docs
	"github.com/oggyb/greenapi-notifier/internal/response"
)

type AppDeps struct {
	Home     HomeHandler
	Provider ProviderHandler
	Device   DeviceHandler
	Media    MediaHandler

	// Optional.
	Maintenance MaintenanceHandler
	Metrics     http.Handler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type ProviderHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	PutSetting(w http.ResponseWriter, r *http.Request)
	GetCreateDeviceSettings(w http.ResponseWriter, r *http.Request)
	CreateDevice(w http.ResponseWriter, r *http.Request)
	ListDevices(w http.ResponseWriter, r *http.Request)
	ReleaseDevice(w http.ResponseWriter, r *http.Request)
}

type DeviceHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	PutSetting(w http.ResponseWriter, r *http.Request)
	SendNotification(w http.ResponseWriter, r *http.Request)
	ListNotifications(w http.ResponseWriter, r *http.Request)
}

type MediaHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type MaintenanceHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	StartStop(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("GET /provider/settings", d.Provider.GetSettings)
	mux.HandleFunc("PUT /provider/settings/{key}", d.Provider.PutSetting)
	mux.HandleFunc("GET /provider/create-settings", d.Provider.GetCreateDeviceSettings)

	mux.HandleFunc("POST /devices", d.Provider.CreateDevice)
	mux.HandleFunc("GET /devices", d.Provider.ListDevices)
	mux.HandleFunc("DELETE /devices/{nativeId}", d.Provider.ReleaseDevice)

	mux.HandleFunc("GET /devices/{nativeId}/settings", d.Device.GetSettings)
	mux.HandleFunc("PUT /devices/{nativeId}/settings/{key}", d.Device.PutSetting)
	mux.HandleFunc("POST /devices/{nativeId}/notifications", d.Device.SendNotification)
	mux.HandleFunc("GET /devices/{nativeId}/notifications", d.Device.ListNotifications)

	mux.HandleFunc("GET /media/{id}", d.Media.Get)

	if d.Maintenance != nil {
		mux.HandleFunc("GET /maintenance", d.Maintenance.Status)
		mux.HandleFunc("POST /maintenance", d.Maintenance.StartStop)
	}

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}

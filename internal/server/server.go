package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Tomlord1122/todoey/internal/service"
)

// HealthChecker reports the state of the backing store.
type HealthChecker interface {
	Health() map[string]string
}

// StaticHealth is a HealthChecker for stores with nothing to probe.
type StaticHealth map[string]string

func (h StaticHealth) Health() map[string]string {
	stats := make(map[string]string, len(h)+1)
	for k, v := range h {
		stats[k] = v
	}
	if _, ok := stats["status"]; !ok {
		stats["status"] = "up"
	}
	return stats
}

type Server struct {
	port     int
	items    *service.ItemManager
	sections *service.SectionManager
	health   HealthChecker
}

// NewServer wires the managers into an *http.Server listening on port.
func NewServer(port int, items *service.ItemManager, sections *service.SectionManager, health HealthChecker) *http.Server {
	appServer := &Server{
		port:     port,
		items:    items,
		sections: sections,
		health:   health,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

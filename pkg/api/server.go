// pkg/api/server.go

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/mfreeman451/unradar/pkg/coordinator"
	"github.com/mfreeman451/unradar/pkg/models"
)

const (
	defaultEventLimit = 100
	readHeaderTimeout = 10 * time.Second
)

// Server exposes the monitor state over a REST API.
type Server struct {
	monitor MonitorService
	router  *mux.Router
	httpSrv *http.Server
	proc    *process.Process
}

// NewServer builds the API server for the given listen address.
func NewServer(listenAddr string, monitor MonitorService) *Server {
	s := &Server{
		monitor: monitor,
		router:  mux.NewRouter(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Printf("Self process stats unavailable: %v", err)
	} else {
		s.proc = proc
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:              listenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	// Add CORS middleware
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Basic endpoints
	s.router.HandleFunc("/api/servers", s.getServers).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}", s.getServer).Methods("GET")
	s.router.HandleFunc("/api/status", s.getSystemStatus).Methods("GET")

	// Snapshot endpoints
	s.router.HandleFunc("/api/servers/{id}/snapshot", s.getSnapshot).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}/disks", s.resourceHandler(func(snap *models.Snapshot) any { return snap.Disks })).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}/shares", s.resourceHandler(func(snap *models.Snapshot) any { return snap.Shares })).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}/vms", s.resourceHandler(func(snap *models.Snapshot) any { return snap.VMs })).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}/containers", s.resourceHandler(func(snap *models.Snapshot) any { return snap.Containers })).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}/ups", s.resourceHandler(func(snap *models.Snapshot) any { return snap.UPSDevices })).Methods("GET")

	// History endpoints
	s.router.HandleFunc("/api/servers/{id}/metrics", s.getMetrics).Methods("GET")
	s.router.HandleFunc("/api/servers/{id}/events", s.getEvents).Methods("GET")

	// Control endpoints
	s.router.HandleFunc("/api/servers/{id}/refresh", s.postRefresh).Methods("POST")
	s.router.HandleFunc("/api/servers/{id}/vms/{resource}/{action}", s.mutationHandler(models.ClassVMs)).Methods("POST")
	s.router.HandleFunc("/api/servers/{id}/containers/{resource}/{action}", s.mutationHandler(models.ClassContainers)).Methods("POST")
	s.router.HandleFunc("/api/servers/{id}/array/parity-check/{action}", s.postParityAction).Methods("POST")
	s.router.HandleFunc("/api/servers/{id}/credential", s.putCredential).Methods("PUT")
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start(context.Context) error {
	log.Printf("HTTP API listening on %s", s.httpSrv.Addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrServerNotFound):
		http.Error(w, "Server not found", http.StatusNotFound)
	case errors.Is(err, coordinator.ErrUnsupportedMutation), errors.Is(err, errInvalidAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func (s *Server) getServers(w http.ResponseWriter, _ *http.Request) {
	ids := s.monitor.ServerIDs()
	statuses := make([]*coordinator.Status, 0, len(ids))

	for _, id := range ids {
		status, err := s.monitor.Status(id)
		if err != nil {
			log.Printf("Error reading status for %s: %v", id, err)
			continue
		}

		statuses = append(statuses, status)
	}

	s.writeJSON(w, statuses)
}

func (s *Server) getServer(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["id"]

	status, err := s.monitor.Status(serverID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, status)
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["id"]

	snap, err := s.monitor.Snapshot(serverID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, snap)
}

// resourceHandler serves one resource collection out of the latest
// snapshot.
func (s *Server) resourceHandler(pick func(*models.Snapshot) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serverID := mux.Vars(r)["id"]

		snap, err := s.monitor.Snapshot(serverID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, pick(snap))
	}
}

func (s *Server) getMetrics(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["id"]

	points := s.monitor.MetricsHistory(serverID)
	if points == nil {
		points = []models.MetricPoint{}
	}

	s.writeJSON(w, points)
}

func (s *Server) getEvents(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["id"]

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	events, err := s.monitor.Events(serverID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, events)
}

func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["id"]

	if err := s.monitor.RequestRefresh(serverID); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	s.writeJSON(w, map[string]string{"status": "refresh requested"})
}

// mutationHandler starts or stops one VM or container.
func (s *Server) mutationHandler(class models.ResourceClass) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		serverID := vars["id"]
		resourceID := vars["resource"]

		var action coordinator.MutationAction

		switch vars["action"] {
		case "start":
			action = coordinator.ActionStart
		case "stop":
			action = coordinator.ActionStop
		default:
			s.writeError(w, fmt.Errorf("%w: %s", errInvalidAction, vars["action"]))
			return
		}

		if err := s.monitor.InvokeMutation(r.Context(), serverID, class, resourceID, action); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
		s.writeJSON(w, map[string]string{"status": "accepted"})
	}
}

func (s *Server) postParityAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serverID := vars["id"]
	action := vars["action"]

	switch action {
	case "start", "pause", "resume", "cancel":
	default:
		s.writeError(w, fmt.Errorf("%w: %s", errInvalidAction, action))
		return
	}

	if err := s.monitor.ParityCheckAction(r.Context(), serverID, action); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	s.writeJSON(w, map[string]string{"status": "accepted"})
}

func (s *Server) putCredential(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["id"]

	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.APIKey == "" {
		http.Error(w, "Invalid credential body", http.StatusBadRequest)
		return
	}

	if err := s.monitor.UpdateCredential(r.Context(), serverID, req.APIKey); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSystemStatus(w http.ResponseWriter, _ *http.Request) {
	ids := s.monitor.ServerIDs()

	status := SystemStatus{
		TotalServers: len(ids),
		LastUpdate:   time.Now(),
	}

	for _, id := range ids {
		st, err := s.monitor.Status(id)
		if err != nil {
			continue
		}

		if st.LastError == "" && !st.LastSuccess.IsZero() {
			status.OnlineServers++
		}

		if len(st.Degraded) > 0 {
			status.DegradedServers++
		}

		if st.NeedsReauth {
			status.ReauthServers++
		}
	}

	if s.proc != nil {
		if cpuPct, err := s.proc.CPUPercent(); err == nil {
			status.Process.CPUPercent = cpuPct
		}

		if memInfo, err := s.proc.MemoryInfo(); err == nil {
			status.Process.MemoryMB = float64(memInfo.RSS) / (1 << 20)
		}
	}

	s.writeJSON(w, status)
}

package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/api"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/logging"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/pipeline"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

const maxUploadBytes = 32 << 20

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(bind string, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:   strings.TrimSpace(bind),
		logger: logger,
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/items", srv.handleItems)
	mux.HandleFunc("/api/items/", srv.handleItem)
	mux.HandleFunc("/api/uploads", srv.handleUpload)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/notifications/test", srv.handleTestNotification)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// handleItems serves POST (submit) and GET (list) on /api/items.
func (s *apiServer) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleSubmit(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req api.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itemType, ok := store.ParseItemType(req.Type)
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown item type %q", req.Type))
		return
	}

	sub := pipeline.Submission{Type: itemType, Content: req.Content}
	if itemType == store.TypePDF {
		if strings.TrimSpace(req.FilePath) == "" {
			s.writeError(w, http.StatusBadRequest, "pdf submissions require file_path")
			return
		}
		sub.Content = req.FilePath
		sub.FilePath = req.FilePath
	}

	jobID, err := s.daemon.Submit(sub)
	if err != nil {
		if errors.Is(err, pipeline.ErrQueueFull) {
			s.writeError(w, http.StatusServiceUnavailable, "ingest queue full, retry later")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusAccepted, api.SubmitResponse{JobID: jobID})
}

func (s *apiServer) handleList(w http.ResponseWriter, r *http.Request) {
	var statuses []store.Status
	for _, value := range r.URL.Query()["status"] {
		status, ok := store.ParseStatus(value)
		if !ok {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", value))
			return
		}
		statuses = append(statuses, status)
	}

	items, err := s.daemon.ListItems(r.Context(), statuses...)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := api.ItemListResponse{Items: make([]api.Item, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, api.FromStoreItem(item))
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// handleItem routes /api/items/{id} and its status, convert, and
// recommendations subresources.
func (s *apiServer) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/items/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleGetItem(w, r, id)
	case "status":
		if r.Method != http.MethodPut {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleUpdateStatus(w, r, id)
	case "convert":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleConvert(w, r, id)
	case "recommendations":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleRecommendations(w, r, id)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *apiServer) handleGetItem(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := s.daemon.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if item == nil {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.ItemResponse{Item: api.FromStoreItem(item)})
}

func (s *apiServer) handleUpdateStatus(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, ok := store.ParseStatus(req.Status)
	if !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}

	if err := s.daemon.UpdateItemStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	item, err := s.daemon.GetItem(r.Context(), id)
	if err != nil || item == nil {
		s.writeError(w, http.StatusInternalServerError, "item updated but could not be reloaded")
		return
	}
	s.writeJSON(w, http.StatusOK, api.ItemResponse{Item: api.FromStoreItem(item)})
}

func (s *apiServer) handleConvert(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TaskContent) == "" {
		s.writeError(w, http.StatusBadRequest, "task_content is required")
		return
	}

	task, err := s.daemon.ConvertItem(r.Context(), id, req.TaskContent)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "item not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, api.ConvertResponse{Task: api.FromStoreItem(task)})
}

func (s *apiServer) handleRecommendations(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := s.daemon.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if item == nil {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	// Recommendation generation is not implemented yet.
	s.writeJSON(w, http.StatusOK, api.RecommendationsResponse{Recommendations: []string{}})
}

func (s *apiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "upload requires a file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "read upload failed")
		return
	}

	path, err := s.daemon.SaveUpload(header.Filename, data)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Multipart uploads carry no meaningful text payload; the stored
	// file path drives extraction.
	jobID, err := s.daemon.Submit(pipeline.Submission{Type: store.TypePDF, FilePath: path})
	if err != nil {
		if errors.Is(err, pipeline.ErrQueueFull) {
			s.writeError(w, http.StatusServiceUnavailable, "ingest queue full, retry later")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusAccepted, api.SubmitResponse{JobID: jobID})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	s.writeJSON(w, http.StatusOK, api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
		Items: api.Health{
			Total:    status.Items.Total,
			New:      status.Items.New,
			Archived: status.Items.Archived,
			Deleted:  status.Items.Deleted,
		},
	})
}

func (s *apiServer) handleTestNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.daemon.TestNotification(r.Context()); err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String(logging.FieldComponent, "api-server"))
	}
	return logging.NewNop()
}

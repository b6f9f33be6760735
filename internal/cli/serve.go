package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmesh/pkg/cache"
	"github.com/matzehuels/mindmesh/pkg/editor"
	"github.com/matzehuels/mindmesh/pkg/errors"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
	"github.com/matzehuels/mindmesh/pkg/observability"
	"github.com/matzehuels/mindmesh/pkg/snapshot"
	"github.com/matzehuels/mindmesh/pkg/storage"
)

func newServeCmd(configFile *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the map editing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			renderCache, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer renderCache.Close()

			srv := &apiServer{store: store, cache: renderCache, logger: logger}
			httpSrv := &http.Server{
				Addr:              cfg.Serve.Addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", "addr", cfg.Serve.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8436)")
	return cmd
}

// apiServer carries the shared backends for the HTTP handlers.
type apiServer struct {
	store  storage.Store
	cache  cache.Cache
	logger *log.Logger
}

func (s *apiServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/maps", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{mapID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Post("/gestures", s.handleGesture)
			r.Get("/render", s.handleRender)
		})
	})
	return r
}

func (s *apiServer) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"maps": ids})
}

func (s *apiServer) handleGet(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	if err := errors.ValidateMapID(mapID); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.store.Load(r.Context(), mapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// handlePut replaces a map with the posted snapshot. The body is fully
// validated before the store is touched, so a malformed snapshot never
// clobbers an existing map.
func (s *apiServer) handlePut(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	if err := errors.ValidateMapID(mapID); err != nil {
		s.writeError(w, err)
		return
	}

	var snap snapshot.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeFormat, err, "parse snapshot"))
		return
	}
	st, err := snapshot.ToStore(snap)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), mapID, snapshot.FromStore(st)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *apiServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	if err := errors.ValidateMapID(mapID); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), mapID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// gestureRequest is the wire form of a single editing gesture.
type gestureRequest struct {
	Gesture  string             `json:"gesture"`
	Tool     string             `json:"tool,omitempty"`
	SourceID string             `json:"sourceId,omitempty"`
	TargetID string             `json:"targetId,omitempty"`
	EdgeID   string             `json:"edgeId,omitempty"`
	Position *snapshot.Position `json:"position,omitempty"`
	Label    string             `json:"label,omitempty"`
	NoArrow  bool               `json:"noArrow,omitempty"`
	NodeID   string             `json:"nodeId,omitempty"`
}

// gestureResponse returns the net change plus the updated snapshot.
type gestureResponse struct {
	CreatedNodes []string          `json:"createdNodes"`
	CreatedEdges []string          `json:"createdEdges"`
	RemovedNodes []string          `json:"removedNodes"`
	RemovedEdges []string          `json:"removedEdges"`
	Snapshot     snapshot.Snapshot `json:"snapshot"`
}

// handleGesture loads the map, applies one gesture through the editor
// session, and persists the result. The map is the unit of consistency:
// a failed gesture leaves the stored snapshot untouched.
func (s *apiServer) handleGesture(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	if err := errors.ValidateMapID(mapID); err != nil {
		s.writeError(w, err)
		return
	}

	var req gestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeFormat, err, "parse gesture"))
		return
	}

	snap, err := s.store.Load(r.Context(), mapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := snapshot.ToStore(snap)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess := editor.NewSession(st)
	if req.Tool != "" {
		tool, err := editor.ParseTool(req.Tool)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidTool, err, "gesture"))
			return
		}
		sess.SetTool(tool)
	}
	if req.Label != "" || req.NoArrow {
		sess.SetPending(editor.Pending{Label: req.Label, NoArrow: req.NoArrow})
	}

	eff, err := applyGesture(sess, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.Editor().OnGesture(r.Context(), req.Gesture, sess.Tool().String())
	observability.Editor().OnMutation(r.Context(), req.Gesture,
		len(eff.CreatedNodes), len(eff.CreatedEdges), len(eff.RemovedNodes), len(eff.RemovedEdges))

	if err := s.store.Save(r.Context(), mapID, snapshot.FromStore(st)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, gestureResponse{
		CreatedNodes: orEmpty(eff.CreatedNodes),
		CreatedEdges: orEmpty(eff.CreatedEdges),
		RemovedNodes: orEmpty(eff.RemovedNodes),
		RemovedEdges: orEmpty(eff.RemovedEdges),
		Snapshot:     snapshot.FromStore(st),
	})
}

// applyGesture dispatches one gesture request to the session.
func applyGesture(sess *editor.Session, req gestureRequest) (editor.Effect, error) {
	pos := mindmap.Position{}
	if req.Position != nil {
		pos = mindmap.Position{X: req.Position.X, Y: req.Position.Y}
	}

	switch req.Gesture {
	case "connect":
		return sess.Connect(req.SourceID, req.TargetID)
	case "clickEmptySpace":
		return sess.ClickEmptySpace(pos), nil
	case "clickEdge":
		return sess.ClickEdge(req.EdgeID), nil
	case "doubleClickEdge":
		return sess.DoubleClickEdge(req.EdgeID, pos), nil
	case "deleteSelection":
		if req.NodeID != "" {
			sess.SelectNode(req.NodeID)
		}
		return sess.DeleteSelection(), nil
	case "createShortcut":
		if req.NodeID != "" {
			sess.SelectNode(req.NodeID)
		}
		return sess.CreateShortcut(pos)
	case "toggleCollapse":
		sess.ToggleCollapse(req.NodeID)
		return editor.Effect{}, nil
	}
	return editor.Effect{}, errors.New(errors.ErrCodeInvalidInput, "unknown gesture %q", req.Gesture)
}

func (s *apiServer) handleRender(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	if err := errors.ValidateMapID(mapID); err != nil {
		s.writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if err := errors.ValidateRenderFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := s.store.Load(r.Context(), mapID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := snapshot.ToStore(snap)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, _, err := renderSnapshot(r.Context(), s.cache, st, renderOpts{format: format})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentTypeFor(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "image/svg+xml"
	}
}

// =============================================================================
// Response Helpers
// =============================================================================

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeMapNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMapID, errors.ErrCodeInvalidTool,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidReference, errors.ErrCodeFormat,
		errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/store"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const navigateTimeout = 2 * time.Minute

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Navigator starts navigations on behalf of connected clients.
type Navigator interface {
	Navigate(ctx context.Context, url string, initialProps types.Document) error
}

// Handler manages WebSocket connections
type Handler struct {
	store     *store.Store
	navigator Navigator
	log       *logging.Logger
	metrics   *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(st *store.Store, navigator Navigator, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewDefault()
	}
	return &Handler{
		store:     st,
		navigator: navigator,
		log:       log,
	}
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()

	// Writes come from both the snapshot fan-out and reply paths.
	var writeMu sync.Mutex

	// Initial snapshot so the client renders without waiting for a transition.
	h.sendState(conn, &writeMu, h.store.State())

	subID, snapshots := h.store.Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for snapshot := range snapshots {
			if !h.sendState(conn, &writeMu, snapshot) {
				return
			}
		}
	}()

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "navigate":
			h.handleNavigate(conn, &writeMu, msg, reqCtx)
		case "dispatch":
			h.handleDispatch(conn, &writeMu, msg)
		case "ping":
			h.send(conn, &writeMu, map[string]interface{}{"type": "pong"})
		default:
			h.sendError(conn, &writeMu, "unknown message type")
		}
	}

	h.store.Unsubscribe(subID)
	<-done
}

func (h *Handler) handleNavigate(conn *websocket.Conn, mu *sync.Mutex, msg types.WSMessage, reqCtx context.Context) {
	if msg.URL == "" {
		h.sendError(conn, mu, "navigate requires url")
		return
	}

	ctx, cancel := context.WithTimeout(reqCtx, navigateTimeout)
	defer cancel()

	// Failure is already in the state as a loading error; nothing to reply.
	if err := h.navigator.Navigate(ctx, msg.URL, nil); err != nil {
		h.log.Warn("navigate failed", zap.String("url", msg.URL), zap.Error(err))
	}
}

func (h *Handler) handleDispatch(conn *websocket.Conn, mu *sync.Mutex, msg types.WSMessage) {
	if len(msg.Action) == 0 {
		h.sendError(conn, mu, "dispatch requires action")
		return
	}

	var action kernel.Action
	if err := sonic.Unmarshal(msg.Action, &action); err != nil {
		h.sendError(conn, mu, "malformed action: "+err.Error())
		return
	}
	if action.Kind == "" {
		h.sendError(conn, mu, "action requires kind")
		return
	}

	h.store.Dispatch(action)
}

func (h *Handler) sendState(conn *websocket.Conn, mu *sync.Mutex, snapshot types.BrowserState) bool {
	return h.send(conn, mu, map[string]interface{}{
		"type":  "state",
		"state": snapshot,
	})
}

func (h *Handler) send(conn *websocket.Conn, mu *sync.Mutex, payload map[string]interface{}) bool {
	mu.Lock()
	defer mu.Unlock()

	if err := conn.WriteJSON(payload); err != nil {
		return false
	}
	if h.metrics != nil {
		if t, ok := payload["type"].(string); ok {
			h.metrics.RecordWSMessage("out", t)
		}
	}
	return true
}

func (h *Handler) sendError(conn *websocket.Conn, mu *sync.Mutex, message string) {
	h.send(conn, mu, map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

package http

import (
	"context"
	"net/http"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/history"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/store"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// Navigator starts navigations on behalf of REST clients.
type Navigator interface {
	Navigate(ctx context.Context, url string, initialProps types.Document) error
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store     *store.Store
	navigator Navigator
	history   *history.Manager
	log       *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(st *store.Store, navigator Navigator, hist *history.Manager, log *logging.Logger) *Handlers {
	if log == nil {
		log = logging.NewDefault()
	}
	return &Handlers{
		store:     st,
		navigator: navigator,
		history:   hist,
		log:       log,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Browser Kernel (Go)",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	state := h.store.State()
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"tasks":           state.Tasks.Len(),
		"history":         len(state.History),
		"isKernelLoading": state.IsKernelLoading,
		"storage":         h.history.Stats(),
	})
}

// GetState returns the current snapshot
func (h *Handlers) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State())
}

// GetHistory returns the history log
func (h *Handlers) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.store.State().History})
}

// Navigate starts a navigation to a manifest URL
func (h *Handlers) Navigate(c *gin.Context) {
	var req struct {
		URL          string         `json:"url" binding:"required"`
		InitialProps types.Document `json:"initialProps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.navigator.Navigate(c.Request.Context(), req.URL, req.InitialProps); err != nil {
		// The failure is already visible in the snapshot as a loading error.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "state": h.store.State()})
		return
	}

	c.JSON(http.StatusOK, h.store.State())
}

// Foreground selects the visible task; a null url clears the selection
func (h *Handlers) Foreground(c *gin.Context) {
	var req struct {
		URL *string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Dispatch(kernel.ForegroundURL(req.URL)))
}

// ForegroundHome shows the home surface
func (h *Handlers) ForegroundHome(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Dispatch(kernel.ForegroundHome()))
}

// SetLoading updates one task's loading flag
func (h *Handlers) SetLoading(c *gin.Context) {
	var req struct {
		URL       string `json:"url" binding:"required"`
		IsLoading bool   `json:"isLoading"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Dispatch(kernel.SetLoadingState(req.URL, req.IsLoading)))
}

// ShowError surfaces a loading error for a URL
func (h *Handlers) ShowError(c *gin.Context) {
	var req struct {
		OriginalURL string         `json:"originalUrl" binding:"required"`
		Code        int            `json:"code"`
		Message     string         `json:"message"`
		Manifest    types.Document `json:"manifest"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Dispatch(kernel.ShowLoadingError(types.LoadingError{
		Code:        req.Code,
		Message:     req.Message,
		OriginalURL: req.OriginalURL,
		Manifest:    req.Manifest,
	})))
}

// ClearTask evicts a failed task and returns to home
func (h *Handlers) ClearTask(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Dispatch(kernel.ClearTaskWithError(req.URL)))
}

// ClearHistory wipes the persisted log, then empties the in-memory one
func (h *Handlers) ClearHistory(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Dispatch(kernel.ClearHistoryThen()))
}

// DispatchAction dispatches a raw kernel action
func (h *Handlers) DispatchAction(c *gin.Context) {
	var action kernel.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if action.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action requires kind"})
		return
	}

	c.JSON(http.StatusOK, h.store.Dispatch(action))
}

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/windoze95/mealfinder/internal/logger"
	"github.com/windoze95/mealfinder/internal/service"
	"github.com/windoze95/mealfinder/internal/view"
	"go.uber.org/zap"
)

// WebSocket message types for the search protocol.
const (
	MsgTypeSearch    = "search"    // Client asks for a meal search
	MsgTypeLookup    = "lookup"    // Client asks for one meal's details
	MsgTypeState     = "state"     // Server reports the presentation state
	MsgTypeError     = "error"     // Protocol error
	MsgTypeConnected = "connected" // Connection confirmed
)

// requestTimeout bounds a single search or lookup. Requests are also
// cancelled when their session ends.
const requestTimeout = 30 * time.Second

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "mealfinder_ws_sessions_active",
	Help: "Current number of open WebSocket search sessions",
})

// WSMessage is the envelope for all messages sent over the search WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SearchPayload is sent by the client to search meals by name.
type SearchPayload struct {
	Query string `json:"query"`
}

// LookupPayload is sent by the client to load one meal.
type LookupPayload struct {
	ID string `json:"id"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	SessionID string `json:"session_id"`
}

// SearchHandler manages WebSocket search sessions.
type SearchHandler struct {
	Service  *service.MealService
	upgrader websocket.Upgrader
}

// NewSearchHandler returns a new SearchHandler. An empty allowedOrigins
// list accepts same-host and localhost origins only.
func NewSearchHandler(mealService *service.MealService, allowedOrigins []string) *SearchHandler {
	return &SearchHandler{
		Service: mealService,
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if origin == o {
				return true
			}
		}
		// Allow localhost for development
		if strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost" {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// HandleSearchSession upgrades an HTTP request to a WebSocket search session.
func (h *SearchHandler) HandleSearchSession(c *gin.Context) {
	log := logger.FromContext(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(conn, uuid.New().String())
	h.greet(client)

	activeSessions.Inc()
	log.Info("search session started", zap.String("session_id", client.SessionID))

	go client.WritePump()
	go func() {
		defer func() {
			activeSessions.Dec()
			log.Info("search session ended", zap.String("session_id", client.SessionID))
		}()
		client.ReadPump(h.handleMessage)
	}()
}

// greet sends the connected confirmation and the initial idle state.
func (h *SearchHandler) greet(client *Client) {
	h.sendMessage(client, MsgTypeConnected, ConnectedPayload{SessionID: client.SessionID})
	h.sendState(client, view.Idle{})
}

// handleMessage parses an incoming WebSocket message and routes it to the
// appropriate handler.
func (h *SearchHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(client, "invalid message format")
		return
	}

	logger.Get().Debug("received ws message",
		zap.String("type", msg.Type),
		zap.String("session_id", client.SessionID),
	)

	switch msg.Type {
	case MsgTypeSearch:
		h.handleSearch(client, msg.Payload)
	case MsgTypeLookup:
		h.handleLookup(client, msg.Payload)
	default:
		h.sendError(client, "unknown message type: "+msg.Type)
	}
}

// handleSearch runs one search, reporting loading then loaded or failed.
func (h *SearchHandler) handleSearch(client *Client, payload json.RawMessage) {
	var req SearchPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		h.sendError(client, "invalid search payload")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		h.sendError(client, "query cannot be empty")
		return
	}

	h.sendState(client, view.Loading{Query: query})

	ctx, cancel := context.WithTimeout(client.Context(), requestTimeout)
	defer cancel()

	result, err := h.Service.Search(ctx, query)
	h.sendState(client, view.SearchOutcome(result, err, h.Service.Cfg.Msgs()))
}

// handleLookup loads one meal, reporting loading then loaded or failed.
func (h *SearchHandler) handleLookup(client *Client, payload json.RawMessage) {
	var req LookupPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		h.sendError(client, "invalid lookup payload")
		return
	}
	if req.ID == "" {
		h.sendError(client, "id is required")
		return
	}

	h.sendState(client, view.Loading{})

	ctx, cancel := context.WithTimeout(client.Context(), requestTimeout)
	defer cancel()

	meal, err := h.Service.GetMeal(ctx, req.ID)
	h.sendState(client, view.LookupOutcome(meal, err, h.Service.Cfg.Msgs()))
}

func (h *SearchHandler) sendState(client *Client, s view.State) {
	h.sendMessage(client, MsgTypeState, view.Encode(s))
}

// sendError sends an error message to a single client.
func (h *SearchHandler) sendError(client *Client, message string) {
	h.sendMessage(client, MsgTypeError, ErrorPayload{Message: message})
}

func (h *SearchHandler) sendMessage(client *Client, msgType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Error("failed to encode ws payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg, _ := json.Marshal(WSMessage{Type: msgType, Payload: raw})
	client.send(msg)
}

package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 5 * time.Second
	maxMessageBytes = 1 << 10
)

type gameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (entity.GameState, error)
	MakeMove(ctx context.Context, sessionID string, position int) (entity.GameState, error)
	ResetGame(ctx context.Context, sessionID string) (entity.GameState, error)
	EndSession(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, sessionID string, message *Message) Payload

type Server struct {
	logger      *zap.Logger
	gameUseCase gameUseCase
	sessionTTL  time.Duration
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *zap.Logger, gameUseCase gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:      logger.With(zap.String("component", "websocket")),
		gameUseCase: gameUseCase,
		sessionTTL:  sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionState] = server.handleState
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionReset] = server.handleReset
	server.handlers[ActionEnd] = server.handleEnd

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	sessionID, known := pkg.SessionFromRequest(req)

	var header http.Header
	if !known {
		sessionID = pkg.GenerateSessionID()
		header = http.Header{}
		header.Add("Set-Cookie", pkg.NewSessionCookie(sessionID, that.sessionTTL).String())
	}

	log := that.logger.With(zap.String("session", sessionID))

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	// close the connection when the server shuts down so ReadJSON unblocks
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established", zap.Bool("new_session", !known))

	if err = that.handleMessages(connCtx, conn, sessionID, !known); err != nil {
		log.Debug("connection closed", zap.Error(err))
	}
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string, announce bool) error {
	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return fmt.Errorf("client closed connection: %w", err)
			}
			if isDecodeError(err) {
				if err = conn.WriteJSON(Response{Payload: Payload{Error: "invalid message"}}); err != nil {
					return fmt.Errorf("failed to write response: %w", err)
				}
				continue
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		payload := that.dispatch(ctx, sessionID, &message)
		if announce {
			payload.Session = sessionID
			announce = false
		}

		if err := conn.WriteJSON(Response{Action: message.Action, Payload: payload}); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

func (that *Server) dispatch(ctx context.Context, sessionID string, message *Message) Payload {
	handler, ok := that.handlers[message.Action]
	if !ok {
		that.logger.Debug("unknown action", zap.String("action", message.Action))
		return Payload{Error: "unknown action"}
	}

	return handler(ctx, sessionID, message)
}

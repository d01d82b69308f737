package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, ownerID, sessionID, method string, params json.RawMessage) (any, error)
}

// CodedError is implemented by handler errors that carry a stable code.
type CodedError interface {
	error
	CodeValue() string
	MessageValue() string
}

// JSON-RPC error codes for handler error codes; anything else is ErrServer.
var codeMapping = map[string]int{
	"METHOD_NOT_FOUND": ErrMethodNotFound,
	"INVALID_PARAMS":   ErrInvalidParams,
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
}

// NewServer creates an HTTP server router with middleware. The /rpc route
// requires an owner in the request context, set by authMiddleware.
func NewServer(handler MCPHandler, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	srv := &Server{handler: handler}
	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Use(SessionMiddleware)
		r.Post("/rpc", srv.handleRPC)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		code := ErrInvalidReq
		if errors.Is(err, errParse) {
			code = ErrParseCode
		}
		WriteError(w, nil, code, err.Error(), nil)
		return
	}

	ownerID, ok := OwnerFromContext(r.Context())
	if !ok || ownerID == "" {
		http.Error(w, "missing owner", http.StatusUnauthorized)
		return
	}

	sessionID, _ := SessionIDFromContext(r.Context())

	result, err := s.handler.Handle(r.Context(), ownerID, sessionID, req.Method, req.Params)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var coded CodedError
		if errors.As(err, &coded) {
			code, ok := codeMapping[coded.CodeValue()]
			if !ok {
				code = ErrServer
			}
			WriteError(w, req.ID, code, coded.MessageValue(), coded)
			return
		}
		WriteError(w, req.ID, ErrInternal, err.Error(), nil)
		return
	}

	WriteResult(w, req.ID, result)
}

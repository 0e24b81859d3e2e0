// Package ipc provides the local HTTP control endpoint. External tools,
// such as a global hotkey daemon, post events to it to drive the palette.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// DefaultAddr is the address the endpoint listens on unless configured.
const DefaultAddr = "127.0.0.1:2357"

const maxBodyBytes = 64 << 10

var (
	// ErrMissingSender is returned when the server has nowhere to deliver events.
	ErrMissingSender = errors.New("ipc: sender is required")

	// ErrUnknownEvent is returned for an event type the endpoint does not handle.
	ErrUnknownEvent = errors.New("ipc: unknown event type")
)

// Sender delivers a message into the running program. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Event is the body of a POST /emit request. Type selects which of the
// other fields apply.
type Event struct {
	Type        string        `json:"type"`
	Query       *domain.Query `json:"query,omitempty"`
	WindowIdent string        `json:"window_ident,omitempty"`
	ScriptName  string        `json:"script_name,omitempty"`
}

// Message converts the event into the program message it stands for.
func (e Event) Message() (tea.Msg, error) {
	switch e.Type {
	case "Query":
		if e.Query == nil {
			return nil, fmt.Errorf("%w: Query event without query", domain.ErrInvalidInput)
		}
		return messages.RunQuery{Query: *e.Query}, nil
	case "OpenWindow":
		w, err := messages.ParseWindowIdent(e.WindowIdent)
		if err != nil {
			return nil, err
		}
		return messages.OpenWindow{Window: w}, nil
	case "CloseWindow":
		w, err := messages.ParseWindowIdent(e.WindowIdent)
		if err != nil {
			return nil, err
		}
		return messages.CloseWindow{Window: w}, nil
	case "RunScript":
		if e.ScriptName == "" {
			return nil, fmt.Errorf("%w: RunScript event without script_name", domain.ErrInvalidInput)
		}
		return messages.RunScript{Name: e.ScriptName}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
}

// Server is the control endpoint. It only decodes events and forwards
// them; the program's update loop applies them.
type Server struct {
	mu       sync.Mutex
	addr     string
	sender   Sender
	server   *http.Server
	listener net.Listener
	log      zerolog.Logger
}

// NewServer creates a control server that will listen on addr.
// An addr with port 0 picks a free port.
func NewServer(addr string, sender Sender) (*Server, error) {
	if sender == nil {
		return nil, ErrMissingSender
	}
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr:   addr,
		sender: sender,
		log:    logger.Component("ipc"),
	}, nil
}

// Handler returns the HTTP handler serving POST /emit.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /emit", s.handleEmit)
	return mux
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.addr = listener.Addr().String()

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("control server stopped")
		}
	}()

	s.log.Info().Str("addr", s.addr).Msg("control server listening")
	return nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Stop shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleEmit(w http.ResponseWriter, r *http.Request) {
	var ev Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&ev); err != nil {
		s.log.Debug().Err(err).Msg("malformed event")
		http.Error(w, "malformed event: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg, err := ev.Message()
	if err != nil {
		s.log.Debug().Err(err).Str("type", ev.Type).Msg("rejected event")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Debug().Str("type", ev.Type).Msg("event received")
	s.sender.Send(msg)
	w.WriteHeader(http.StatusNoContent)
}

// Package web serves the single-page chat UI over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/textmath/textmath/internal/chat"
	"github.com/textmath/textmath/internal/session"
)

// CookieName is the session cookie set on every browser.
const CookieName = "textmath_session"

// Server holds the handlers of the chat UI.
type Server struct {
	sessions *session.Manager
	chat     *chat.Controller
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewServer creates the chat UI server.
func NewServer(sessions *session.Manager, controller *chat.Controller) *Server {
	return &Server{
		sessions: sessions,
		chat:     controller,
		hub:      NewHub(),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

// Hub returns the progress hub used by /ws.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /ws", s.handleProgress)
	mux.HandleFunc("GET /healthz", handleHealth)
	return mux
}

// session resolves the caller's session, starting one and setting the
// cookie when the browser has none or its session expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	id := ""
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}
	sess, created, err := s.sessions.GetOrCreate(id)
	if err != nil {
		return nil, err
	}
	if created {
		setSessionCookie(w, sess.ID)
		slog.Debug("Started session", "session", sess.ID)
	}
	return sess, nil
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := newPageData()
	data.Messages = transcriptView(sess.Messages())
	if f, ok := sess.TakeFlash(); ok {
		data.Flash = &flashView{Kind: string(f.Kind), Icon: flashIcons[f.Kind], Text: f.Text}
	}
	renderPage(w, http.StatusOK, data)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	question := r.PostFormValue("question")
	reply, err := s.chat.Submit(r.Context(), sess, question, func(line string) {
		s.hub.Publish(sess.ID, line)
	})
	switch {
	case err == nil:
		sess.SetFlash(session.FlashSuccess, reply)
	case errors.Is(err, chat.ErrEmptyInput):
		sess.SetFlash(session.FlashWarning, "Please enter a question before submitting.")
	case errors.Is(err, chat.ErrBusy):
		sess.SetFlash(session.FlashWarning, "A response is already being generated. Please wait.")
	default:
		sess.SetFlash(session.FlashError, err.Error())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		s.sessions.Delete(c.Value)
	}
	sess, err := s.sessions.Create()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleProgress streams the progress lines of the caller's in-flight run.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	if _, ok := s.sessions.Get(c.Value); !ok {
		http.Error(w, "unknown session", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	lines, cancel := s.hub.Subscribe(c.Value)
	defer cancel()

	// Reader: detects the browser going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case line := <-lines:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return
			}
		}
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// CredentialErrorHandler serves only the configuration error banner. It is
// used in place of the chat UI when no API key is available.
func CredentialErrorHandler(envVar string) http.Handler {
	banner := CredentialBanner(envVar)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		data := newPageData()
		data.Fatal = banner
		renderPage(w, http.StatusServiceUnavailable, data)
	})
	return mux
}

// CredentialBanner is the user-facing text for a missing API key.
func CredentialBanner(envVar string) string {
	if envVar == "" {
		envVar = "GROQ_API_KEY"
	}
	return fmt.Sprintf("%s not found in environment. Please check your .env file.", envVar)
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("HTTP server stopped")
		return nil
	}
}

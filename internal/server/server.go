// Package server hosts the demo page: a text box seeded with a program, a run
// button and an output region holding the live form.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/orchestrator"
	"github.com/goliatone/go-forminterp/pkg/program"
	"github.com/goliatone/go-forminterp/pkg/render"
	"github.com/goliatone/go-forminterp/pkg/render/template/gotemplate"
	htmlrenderer "github.com/goliatone/go-forminterp/pkg/renderers/html"
)

//go:embed templates/*.tmpl
var pageTemplates embed.FS

// ClickField is the form key carrying the clicked button's name.
const ClickField = "_click"

// ControllerFactory builds the controller for a new session. Callbacks should
// report through notifier so their output reaches the page.
type ControllerFactory func(notifier interp.Notifier) *interp.Controller

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeedProgram replaces the program the text box starts with.
func WithSeedProgram(prog program.Program) Option {
	return func(s *Server) {
		s.seed = prog
	}
}

// WithControllerFactory replaces the login controller.
func WithControllerFactory(factory ControllerFactory) Option {
	return func(s *Server) {
		if factory != nil {
			s.controllers = factory
		}
	}
}

// WithRenderer selects the renderer used for the output region.
func WithRenderer(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.renderer = name
		}
	}
}

// WithTheme selects the theme and variant for the output region.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithMaxSessions bounds the number of live forms kept in memory.
func WithMaxSessions(max int) Option {
	return func(s *Server) {
		if max > 0 {
			s.maxSessions = max
		}
	}
}

// Server serves the page and keeps one live form per run.
type Server struct {
	orch         *orchestrator.Orchestrator
	page         *gotemplate.Engine
	logger       *zap.Logger
	seed         program.Program
	controllers  ControllerFactory
	renderer     string
	themeName    string
	themeVariant string
	maxSessions  int
	sessions     *store
}

// New constructs a Server rendering through orch.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	page, err := gotemplate.New(gotemplate.WithFS(pageTemplates), gotemplate.WithExtension(".tmpl"))
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}

	s := &Server{
		orch:        orch,
		page:        page,
		logger:      zap.NewNop(),
		seed:        program.Sample(),
		controllers: LoginController,
		renderer:    htmlrenderer.Name,
		maxSessions: 1024,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.sessions = newStore(s.maxSessions)
	return s, nil
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /run", s.handleRun)
	mux.HandleFunc("GET /forms/{id}", s.handleForm)
	mux.HandleFunc("POST /forms/{id}/click", s.handleClick)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(htmlrenderer.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

type pageView struct {
	Title      string `json:"title"`
	Stylesheet string `json:"stylesheet"`
	Program    string `json:"program"`
	Session    string `json:"session"`
	Output     string `json:"output"`
	Error      string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	seed, err := program.Encode(s.seed)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode program: %v", err), http.StatusInternalServerError)
		return
	}
	s.writePage(w, http.StatusOK, pageView{Program: string(seed)})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("parse form: %v", err), http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("program")
	if previous := strings.TrimSpace(r.PostFormValue("session")); previous != "" {
		s.sessions.remove(previous)
	}

	prog, err := program.Parse([]byte(text))
	if err != nil {
		s.writePage(w, http.StatusBadRequest, pageView{Program: text, Error: err.Error()})
		return
	}

	session := s.sessions.create(text)
	form, err := s.orch.Build(r.Context(), orchestrator.Request{
		Program:    &prog,
		Controller: s.controllers(&session.notices),
		Notifier:   &session.notices,
	})
	if err != nil {
		s.sessions.remove(session.ID)
		s.writePage(w, http.StatusBadRequest, pageView{Program: text, Error: err.Error()})
		return
	}
	if err := session.region.Mount(form); err != nil {
		s.sessions.remove(session.ID)
		http.Error(w, fmt.Sprintf("mount form: %v", err), http.StatusInternalServerError)
		return
	}

	s.logger.Info("program run",
		zap.String("session", session.ID),
		zap.String("program", form.ProgramName()),
		zap.Int("fields", form.Len()),
		zap.Int("diagnostics", len(form.Diagnostics())),
	)
	s.writeSession(r.Context(), w, http.StatusOK, session, nil)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	renderer, err := s.orch.Renderer(s.renderer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	output, err := s.renderOutput(r.Context(), session, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	if _, err := w.Write(output); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessions.get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("parse form: %v", err), http.StatusBadRequest)
		return
	}
	name := r.PostFormValue(ClickField)
	if name == "" {
		http.Error(w, "missing "+ClickField, http.StatusBadRequest)
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	form := session.Form()
	if form == nil {
		http.NotFound(w, r)
		return
	}
	for field := range form.Values() {
		if values, posted := r.PostForm[field]; posted && len(values) > 0 {
			_ = form.SetValue(field, values[0])
		}
	}

	var callbackErr error
	switch err := form.Click(r.Context(), name); {
	case errors.Is(err, interp.ErrFieldNotFound), errors.Is(err, interp.ErrNotButton):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		callbackErr = err
		s.logger.Warn("callback failed",
			zap.String("session", session.ID),
			zap.String("button", name),
			zap.Error(err),
		)
	}

	notices := session.notices.Drain()
	if callbackErr != nil {
		notices = append(notices, callbackErr.Error())
	}
	s.writeSession(r.Context(), w, http.StatusOK, session, notices)
}

func (s *Server) writeSession(ctx context.Context, w http.ResponseWriter, status int, session *Session, notices []string) {
	output, err := s.renderOutput(ctx, session, notices)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writePage(w, status, pageView{
		Program: session.Program,
		Session: session.ID,
		Output:  string(output),
	})
}

func (s *Server) renderOutput(ctx context.Context, session *Session, notices []string) ([]byte, error) {
	return s.orch.RenderForm(ctx, session.Form(), orchestrator.Request{
		Renderer:     s.renderer,
		ThemeName:    s.themeName,
		ThemeVariant: s.themeVariant,
		RenderOptions: render.RenderOptions{
			Action:  "/forms/" + session.ID + "/click",
			Notices: notices,
		},
	})
}

func (s *Server) writePage(w http.ResponseWriter, status int, view pageView) {
	if view.Title == "" {
		view.Title = "Form interpreter"
	}
	view.Stylesheet = "/assets/" + htmlrenderer.StylesheetName

	page, err := s.page.RenderTemplate("templates/page", view)
	if err != nil {
		http.Error(w, fmt.Sprintf("render page: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(page)); err != nil {
		s.logger.Warn("write response", zap.Error(err))
	}
}

// Run serves handler on addr until ctx is done, then shuts down within grace.
func Run(ctx context.Context, addr string, handler http.Handler, grace time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	logger.Info("listening", zap.String("addr", addr))

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

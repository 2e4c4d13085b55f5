package http

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"printpredict/form"
	"printpredict/i18n"
	"printpredict/inference"
)

//go:embed templates/*.html static/*
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "templates/index.html"))

// App serves the prediction form.
type App struct {
	invoker  *inference.Invoker
	sessions *SessionStore
	locale   language.Tag
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewApp(invoker *inference.Invoker, sessions *SessionStore, locale language.Tag, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		invoker:  invoker,
		sessions: sessions,
		locale:   locale,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (a *App) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(assets, "static")
	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("POST /{$}", a.handleSubmit)
	mux.HandleFunc("GET /ws", a.handleWebSocket)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *App) printer(r *http.Request) *i18n.Printer {
	return i18n.NewPrinter(i18n.Match(r.Header.Get("Accept-Language"), a.locale))
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := a.printer(r)
	var view pageView
	id := a.sessions.With(sessionID(r), func(s *form.Session) {
		view = buildPage(p, s, nil, nil)
	})
	setSessionCookie(w, id)
	a.render(w, http.StatusOK, view)
}

// handleSubmit applies every submitted field, then predicts when the submit
// button was used. Without JavaScript this is the whole interaction.
func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := a.printer(r)
	var view pageView
	id := a.sessions.With(sessionID(r), func(s *form.Session) {
		errs := applyForm(p, s, r.PostForm)
		var out inference.Outcome
		if r.PostForm.Get("action") == "predict" {
			out = a.invoker.Invoke(r.Context(), s)
		}
		view = buildPage(p, s, errs, out)
	})
	setSessionCookie(w, id)
	a.render(w, http.StatusOK, view)
}

func (a *App) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		a.logger.Error("render page", zap.Error(err))
	}
}

// applyForm sets the fields present in values and returns localized messages
// for the rejected ones.
func applyForm(p *i18n.Printer, s *form.Session, values map[string][]string) []string {
	var errs []string
	for _, field := range form.Columns {
		raw, ok := values[string(field)]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := s.Set(field, raw[0]); err != nil {
			errs = append(errs, p.Sprintf(i18n.InvalidInput, p.FieldLabel(string(field)), raw[0]))
		}
	}
	return errs
}

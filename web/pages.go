package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"maroon_shop/api/middleware"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticDir embed.FS

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticDir, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type formField struct {
	Name  string
	Label string
	Value string
	Error string
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "£" + d.StringFixed(2)
	},
	"field": func(name, label, value string, errors map[string]string) formField {
		return formField{Name: name, Label: label, Value: value, Error: errors[name]}
	},
}

// pages holds one template set per page, each combined with the layout.
type pages struct {
	byName map[string]*template.Template
}

func mustParsePages() *pages {
	names, err := fs.Glob(templateFiles, "templates/*.html")
	if err != nil {
		panic(err)
	}

	p := &pages{byName: map[string]*template.Template{}}
	for _, path := range names {
		name := path[len("templates/"):]
		if name == "layout.html" {
			continue
		}
		p.byName[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFiles, "templates/layout.html", path))
	}
	return p
}

// view is what the layout sees; Page is the page's own data.
type view struct {
	AppName    string
	CustomerID int64
	ItemCount  int
	Page       any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, page any) {
	tmpl, ok := s.pages.byName[name]
	if !ok {
		s.logger.Error("Unknown page template", gecho.Field("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	v := view{AppName: s.cfg.Server.AppName, CustomerID: middleware.CustomerID(r.Context()), Page: page}
	if v.CustomerID != 0 {
		count, err := s.basket.ItemCount(r.Context(), v.CustomerID)
		if err != nil {
			s.logger.Warn("Failed to count basket items", gecho.Field("error", err))
		}
		v.ItemCount = count
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		s.logger.Error("Failed to render page", gecho.Field("template", name), gecho.Field("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail renders the error page for err, or the not-found page for API 404s.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, what string) {
	if isNotFound(err) {
		s.render(w, r, http.StatusNotFound, "notfound.html", nil)
		return
	}
	s.logger.Error(fmt.Sprintf("Failed to load %s", what), gecho.Field("error", err), gecho.Field("path", r.URL.Path))
	s.render(w, r, http.StatusInternalServerError, "error.html", nil)
}

package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"forum/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render
const (
	viewLogin    = "login"
	viewRegister = "register"
	viewIndex    = "index"
	viewAddTopic = "add_topic"
	viewTopic    = "topic"
)

// ViewData is the data bag handed to every page
type ViewData struct {
	Title    string
	Username string
	Form     map[string]string
	Errors   map[string]string
	Topics   []models.Topic
	Topic    *models.Topic
	Messages []models.Message
}

func newViewData(title string) *ViewData {
	return &ViewData{
		Title:  title,
		Form:   map[string]string{},
		Errors: map[string]string{},
	}
}

// Renderer holds one parsed template set per page, each combining the layout,
// the partials and the page itself
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names := []string{viewLogin, viewRegister, viewIndex, viewAddTopic, viewTopic}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		ts, err := template.New(name).ParseFS(templateFS,
			"templates/layout.html",
			"templates/*.partial.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = ts
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, data *ViewData) error {
	ts, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

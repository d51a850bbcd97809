package main

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/myrjola/gymplan/internal/contexthelpers"
	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/export"
)

//go:embed templates
var embeddedTemplates embed.FS

// resolveTemplateFS returns the embedded templates unless templatePath points to a directory.
func resolveTemplateFS(templatePath string) (fs.FS, error) {
	if templatePath == "" {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("embedded templates: %w", err)
		}
		return sub, nil
	}
	stat, err := os.Stat(templatePath)
	if err != nil {
		return nil, fmt.Errorf("template path not found %s: %w", templatePath, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("template path is not a directory: %s", templatePath)
	}
	return os.DirFS(templatePath), nil
}

type BaseTemplateData struct {
	CurrentPath string
	TraceID     string
	Flash       string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
		TraceID:     contexthelpers.TraceID(r.Context()),
		Flash:       "",
	}
}

// newSessionTemplateData also pops the flash message from the session.
func (app *application) newSessionTemplateData(r *http.Request) BaseTemplateData {
	data := newBaseTemplateData(r)
	data.Flash = app.sessionManager.PopString(r.Context(), flashKey)
	return data
}

// formatFloat formats a float to remove trailing zeros and unnecessary precision.
// This handles the floating point rounding errors like 60.900000000000006.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// baseTemplateFuncs returns the base template.FuncMap with placeholder implementations.
// Context-dependent functions must be overridden with actual implementations.
func (app *application) baseTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"mdToHTML": func() string {
			panic("not implemented")
		},
		"formatFloat": formatFloat,
	}
}

// contextTemplateFuncs returns template.FuncMap with context-dependent function implementations.
func (app *application) contextTemplateFuncs(ctx context.Context) template.FuncMap {
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"mdToHTML": func(markdown string) template.HTML {
			return app.renderMarkdownToHTML(ctx, markdown)
		},
		"formatFloat": formatFloat,
	}
}

// renderMarkdownToHTML converts markdown with goldmark. Goldmark omits raw HTML so the output is safe to embed.
func (app *application) renderMarkdownToHTML(ctx context.Context, markdown string) template.HTML {
	rendered, err := export.RenderMarkdown(markdown)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "failed to render markdown", errors.SlogError(err))
		return template.HTML(template.HTMLEscapeString(markdown)) //nolint:gosec // escaped.
	}
	return template.HTML(rendered) //nolint:gosec // goldmark drops raw HTML.
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside the templates/pages folder. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
	t, err := template.New(pageName).Funcs(app.baseTemplateFuncs()).
		ParseFS(app.templateFS, "base.gohtml", fmt.Sprintf("pages/%s/*.gohtml", pageName))
	if err != nil {
		return nil, fmt.Errorf("new template: %w", err)
	}
	return t, nil
}

func (app *application) renderToBuf(ctx context.Context, file string, data any) (*bytes.Buffer, error) {
	t, err := app.pageTemplate(file)
	if err != nil {
		return nil, fmt.Errorf("retrieve page template %s: %w", file, err)
	}

	buf := new(bytes.Buffer)
	t.Funcs(app.contextTemplateFuncs(ctx))
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", file, err)
	}

	return buf, nil
}

// render renders the template residing in the templates/pages/{pageName} folder and writes it to the response
// writer.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	buf, err := app.renderToBuf(r.Context(), pageName, data)
	if err != nil {
		if pageName == "error" {
			// The error page itself failed so fall back to plain text.
			app.logger.LogAttrs(r.Context(), slog.LevelError, "render error page", errors.SlogError(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}

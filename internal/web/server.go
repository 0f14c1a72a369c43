package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"folio-cli/internal/content"
	"folio-cli/internal/palette"
	"folio-cli/internal/prefs"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Registry *content.Registry
	Theme    *prefs.Theme
	Logger   *slog.Logger
	// GinMode is debug, release or test; empty leaves gin's mode alone.
	GinMode string
}

// Server renders the portfolio registry as HTML and JSON. The registry is
// read-only; the theme preference is the only mutable state.
type Server struct {
	reg    *content.Registry
	theme  *prefs.Theme
	log    *slog.Logger
	engine *gin.Engine
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Registry == nil {
		cfg.Registry = content.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Theme == nil {
		cfg.Theme = prefs.NewTheme(prefs.NewMemoryStore(), nil, cfg.Logger)
	}
	if strings.TrimSpace(cfg.GinMode) != "" {
		gin.SetMode(cfg.GinMode)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pageHead": func(dark bool, title string) headData {
			return headData{Dark: dark, Title: title}
		},
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		reg:   cfg.Registry,
		theme: cfg.Theme,
		log:   cfg.Logger,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.GET("/static/style.css", s.handleStyle)

	r.GET("/", s.handleIndex)
	r.GET("/projects/:id", s.handleProject)
	r.POST("/theme/toggle", s.handleThemeToggleForm)

	api := r.Group("/api")
	api.GET("/projects", s.handleAPIProjects)
	api.GET("/projects/:id", s.handleAPIProject)
	api.GET("/tags", s.handleAPITags)
	api.GET("/actions", s.handleAPIActions)
	api.GET("/theme", s.handleAPITheme)
	api.POST("/theme/toggle", s.handleAPIThemeToggle)

	s.engine = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

type headData struct {
	Dark  bool
	Title string
}

type tagLink struct {
	Name   string
	Href   string
	Active bool
}

type actionLink struct {
	Label  string
	Hint   string
	Href   string
	NewTab bool
	// Theme actions render as a form button instead of a link.
	Theme bool
}

type pageData struct {
	Dark          bool
	Profile       content.Profile
	Tags          []tagLink
	ActiveTag     string
	Projects      []content.Project
	Skills        []content.Skill
	Experience    []content.Experience
	OtherProjects []content.OtherProject
	Actions       []actionLink
}

func (s *Server) filtered(tag string) content.Filter {
	f := content.NewFilter(s.reg.Projects)
	if strings.TrimSpace(tag) != "" {
		f.SetActiveTag(f.Lookup(tag))
	}
	return f
}

func (s *Server) actionLinks(dark bool) []actionLink {
	entries := palette.Describe(s.reg.Profile, dark, "")
	out := make([]actionLink, 0, len(entries))
	for _, e := range entries {
		a := actionLink{Label: e.Label, Hint: e.Hint}
		switch e.Target.Kind {
		case "scroll":
			a.Href = "/#" + string(e.Target.Anchor)
		case "link":
			a.Href = e.Target.URL
			a.NewTab = e.Target.NewContext
		case "theme":
			a.Theme = true
		}
		out = append(out, a)
	}
	return out
}

func (s *Server) handleIndex(c *gin.Context) {
	dark := s.theme.Get()
	f := s.filtered(c.Query("tag"))

	tags := make([]tagLink, 0, len(f.Tags()))
	for _, t := range f.Tags() {
		href := "/?tag=" + template.URLQueryEscaper(t) + "#projects"
		if t == content.AllTag {
			href = "/#projects"
		}
		tags = append(tags, tagLink{Name: t, Href: href, Active: t == f.Active()})
	}

	c.HTML(http.StatusOK, "index.html", pageData{
		Dark:          dark,
		Profile:       s.reg.Profile,
		Tags:          tags,
		ActiveTag:     f.Active(),
		Projects:      f.Visible(),
		Skills:        s.reg.Skills,
		Experience:    s.reg.Experience,
		OtherProjects: s.reg.OtherProjects,
		Actions:       s.actionLinks(dark),
	})
}

func (s *Server) handleProject(c *gin.Context) {
	p, err := s.reg.Project(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrProjectNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{
				"Dark": s.theme.Get(),
				"ID":   c.Param("id"),
			})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "project.html", gin.H{
		"Dark":    s.theme.Get(),
		"Profile": s.reg.Profile,
		"Project": p,
		"Body":    renderCaseStudyHTML(content.CaseStudyMarkdown(p)),
	})
}

func (s *Server) handleThemeToggleForm(c *gin.Context) {
	dark := s.theme.Toggle()
	s.log.Info("theme toggled", "dark", dark, "via", "form")
	back := "/"
	// Only redirect back to pages on this host.
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Host == c.Request.Host && ref.Path != "" {
		back = ref.RequestURI()
	}
	c.Redirect(http.StatusSeeOther, back)
}

func (s *Server) handleStyle(c *gin.Context) {
	b, err := assetsFS.ReadFile("static/style.css")
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", b)
}

func (s *Server) handleAPIProjects(c *gin.Context) {
	f := s.filtered(c.Query("tag"))
	visible := f.Visible()
	c.JSON(http.StatusOK, gin.H{
		"data": visible,
		"meta": gin.H{"tag": f.Active(), "count": len(visible)},
	})
}

func (s *Server) handleAPIProject(c *gin.Context) {
	p, err := s.reg.Project(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": p,
		"meta": gin.H{"markdown": content.CaseStudyMarkdown(p)},
	})
}

func (s *Server) handleAPITags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": content.Tags(s.reg.Projects)})
}

func (s *Server) handleAPIActions(c *gin.Context) {
	q := c.Query("q")
	entries := palette.Describe(s.reg.Profile, s.theme.Get(), q)
	c.JSON(http.StatusOK, gin.H{
		"data": entries,
		"meta": gin.H{"query": q, "count": len(entries)},
	})
}

func (s *Server) themeJSON() gin.H {
	dark := s.theme.Get()
	return gin.H{"data": gin.H{
		"darkMode":    dark,
		"toggleLabel": palette.ThemeLabel(dark),
		"degraded":    s.theme.Degraded(),
	}}
}

func (s *Server) handleAPITheme(c *gin.Context) {
	c.JSON(http.StatusOK, s.themeJSON())
}

func (s *Server) handleAPIThemeToggle(c *gin.Context) {
	dark := s.theme.Toggle()
	s.log.Info("theme toggled", "dark", dark, "via", "api")
	c.JSON(http.StatusOK, s.themeJSON())
}

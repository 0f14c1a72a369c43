package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style + wrap width. WithAutoStyle is avoided: it can
	// block on terminal background queries, and the style follows the theme
	// preference anyway.
	mdRenderers = map[string]*glamour.TermRenderer{}
	mdStyle     = "dark"
)

func setMarkdownStyle(dark bool) {
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	if dark {
		mdStyle = "dark"
	} else {
		mdStyle = "light"
	}
}

func markdownStyle() string {
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	return mdStyle
}

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	styleName := markdownStyle()
	key := styleName + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(styleName)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	if styleName == "light" {
		cfg := styles.LightStyleConfig
		applyFolioMarkdownPalette(&cfg, styleName)
		return cfg
	}
	cfg := styles.DarkStyleConfig
	applyFolioMarkdownPalette(&cfg, styleName)
	return cfg
}

// applyFolioMarkdownPalette aligns glamour's palette with the page: surface
// foreground for text and headings, rose accent for links and H1.
func applyFolioMarkdownPalette(cfg *ansi.StyleConfig, styleName string) {
	text := mdColor(colorSurfaceFg, styleName)
	accent := mdColor(colorAccent, styleName)

	cfg.Text.Color = text
	cfg.Heading.Color = text
	cfg.H2.Color = text
	cfg.H3.Color = text

	// H1 defaults to a filled block; keep it as plain accent text.
	cfg.H1.Color = accent
	cfg.H1.BackgroundColor = nil
	cfg.H1.Prefix = ""
	cfg.H1.Suffix = ""

	cfg.Link.Color = accent
	cfg.Link.Underline = mdBoolPtr(true)
	cfg.LinkText.Color = accent

	cfg.Code.Color = mdColor(colorBadgeFg, styleName)
	cfg.Code.BackgroundColor = mdColor(colorBadgeBg, styleName)

	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	cfg.BlockQuote.Faint = mdBoolPtr(false)
	cfg.BlockQuote.Color = accent
}

func mdColor(c lipgloss.AdaptiveColor, styleName string) *string {
	if styleName == "light" {
		return mdStrPtr(c.Light)
	}
	return mdStrPtr(c.Dark)
}

func mdStrPtr(s string) *string { return &s }
func mdBoolPtr(b bool) *bool    { return &b }

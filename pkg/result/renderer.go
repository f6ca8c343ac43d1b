package result

import (
	"embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	priceTemplate     = "price.tpl"
	diagnosisTemplate = "diagnosis.tpl"
	failureTemplate   = "failure.tpl"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPlain disables terminal styling. Output is then stable text suitable
// for logs, pipes, and tests.
func WithPlain() Option {
	return func(r *Renderer) {
		r.plain = true
	}
}

// WithTemplates replaces the bundled templates. fsys must provide
// price.tpl, diagnosis.tpl, and failure.tpl.
func WithTemplates(fsys fs.FS) Option {
	return func(r *Renderer) {
		if fsys != nil {
			r.templates = fsys
		}
	}
}

// Renderer turns a State into display text.
type Renderer struct {
	templates fs.FS
	set       *pongo2.TemplateSet
	plain     bool
	styles    styles
}

// NewRenderer constructs a Renderer backed by the bundled pongo2 templates.
func NewRenderer(options ...Option) (*Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("result: templates: %w", err)
	}
	r := &Renderer{templates: sub}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.set = pongo2.NewSet("predictform-result", pongo2.NewFSLoader(r.templates))
	r.styles = defaultStyles()

	for _, name := range []string{priceTemplate, diagnosisTemplate, failureTemplate} {
		if _, err := r.set.FromCache(name); err != nil {
			return nil, fmt.Errorf("result: load template %s: %w", name, err)
		}
	}
	return r, nil
}

// Render returns the display text for state. Empty states render as "".
func (r *Renderer) Render(state State) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("result: renderer is nil")
	}
	switch state.Kind() {
	case KindSuccess:
		summary, _ := state.Summary()
		return r.renderSummary(summary)
	case KindFailure:
		message, _ := state.Message()
		return r.renderFailure(message)
	default:
		return "", nil
	}
}

func (r *Renderer) renderSummary(summary Summary) (string, error) {
	switch s := summary.(type) {
	case Price:
		out, err := r.execute(priceTemplate, pongo2.Context{
			"price": FormatPrice(s.Value),
		})
		if err != nil {
			return "", err
		}
		return r.style(r.styles.success, out), nil
	case Diagnosis:
		out, err := r.execute(diagnosisTemplate, pongo2.Context{
			"heading":  r.style(r.styles.heading, "Diagnostic Result"),
			"class":    r.style(r.styles.emphasis, cleanText(s.Class)),
			"badge":    r.badge(s),
			"filename": r.style(r.styles.muted, cleanName(s.Filename)),
		})
		if err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", fmt.Errorf("result: unsupported summary %T", summary)
	}
}

func (r *Renderer) renderFailure(message string) (string, error) {
	marker := ""
	if r.plain {
		marker = "Error: "
	}
	out, err := r.execute(failureTemplate, pongo2.Context{
		"marker":  marker,
		"message": cleanText(message),
	})
	if err != nil {
		return "", err
	}
	return r.style(r.styles.failure, out), nil
}

func (r *Renderer) badge(d Diagnosis) string {
	tier := d.Tier()
	text := cleanText(d.Confidence)
	if r.plain {
		return fmt.Sprintf("%s [%s]", text, tier)
	}
	return r.styles.tiers[tier].Render(text)
}

func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("result: load template %s: %w", name, err)
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("result: render %s: %w", name, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

func (r *Renderer) style(style lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return style.Render(text)
}

// FormatPrice prints v with the fewest digits that represent it exactly
// (450, 450.5).
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cleanText strips markup and terminal control runes from server-provided
// strings before they reach the terminal. Line breaks survive.
func cleanText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	unescaped := html.UnescapeString(textPolicy.Sanitize(raw))
	return strings.TrimSpace(stripControl(unescaped, true))
}

// cleanName is cleanText for file names: no markup pass, since names such as
// "scan<1>.png" are literal, and no line breaks.
func cleanName(raw string) string {
	return strings.TrimSpace(stripControl(raw, false))
}

// stripControl drops C0 and C1 control runes, which include the escape
// sequences a terminal would interpret.
func stripControl(s string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		if keepNewlines && r == '\n' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

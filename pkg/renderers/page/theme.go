package page

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme and variant names understood by ResolveTheme.
const (
	DefaultTheme   = "default"
	DefaultVariant = "light"
	DarkVariant    = "dark"
)

// DefaultManifest describes the colours and spacing of both screens. The
// light palette is the base; the dark variant overrides a subset of tokens.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"page-bg":        "#f9fafb",
			"card-bg":        "#ffffff",
			"card-border":    "#d1d5db",
			"input-border":   "#e5e7eb",
			"text":           "#000000",
			"text-muted":     "#6b7280",
			"placeholder":    "#9ca3af",
			"icon":           "#9ca3af",
			"error":          "#ef4444",
			"accent":         "#16a34a",
			"accent-hover":   "#15803d",
			"accent-text":    "#ffffff",
			"radius":         "1rem",
			"font-family":    "ui-sans-serif, system-ui, -apple-system, \"Segoe UI\", Roboto, sans-serif",
			"content-width":  "42rem",
			"control-height": "4rem",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"page.stylesheet": "page.css",
			},
		},
		Variants: map[string]theme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"page-bg":      "#111827",
					"card-bg":      "#1f2937",
					"card-border":  "#374151",
					"input-border": "#374151",
					"text":         "#f9fafb",
					"text-muted":   "#d1d5db",
					"placeholder":  "#6b7280",
					"icon":         "#6b7280",
				},
			},
		},
	}
}

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

// ThemeProvider resolves renderer configuration for a theme/variant pair.
// Manifests are validated by a go-theme registry when added.
type ThemeProvider struct {
	registry  manifestRegistry
	manifests map[string]*theme.Manifest
}

// NewThemeProvider registers the given manifests, falling back to
// DefaultManifest when none are supplied.
func NewThemeProvider(manifests ...*theme.Manifest) (*ThemeProvider, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	provider := &ThemeProvider{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := provider.registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("page: register theme %q: %w", manifest.Name, err)
		}
		provider.manifests[manifest.Name] = manifest
	}
	return provider, nil
}

// Themes lists the registered theme names.
func (p *ThemeProvider) Themes() []string {
	names := make([]string, 0, len(p.manifests))
	for name := range p.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges variant tokens over the base tokens and derives CSS custom
// properties and asset URLs. Empty names select the defaults; an unknown
// variant is an error so typos in configuration surface at startup.
func (p *ThemeProvider) Resolve(name, variant string) (*theme.RendererConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = DefaultVariant
	}

	manifest, ok := p.manifests[name]
	if !ok {
		return nil, fmt.Errorf("page: theme %q not registered", name)
	}

	tokens := copyTokens(manifest.Tokens)
	files := copyTokens(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	partials := copyTokens(manifest.Templates)

	if variant != DefaultVariant {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("page: theme %q has no variant %q", name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		for key, value := range v.Templates {
			partials[key] = value
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}, nil
}

// ResolveTheme is a convenience for the bundled manifest.
func ResolveTheme(name, variant string) (*theme.RendererConfig, error) {
	provider, err := NewThemeProvider()
	if err != nil {
		return nil, err
	}
	return provider.Resolve(name, variant)
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return prefix + "/" + file
	}
}

func copyTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

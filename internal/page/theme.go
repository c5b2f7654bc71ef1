package page

import (
	"fmt"
	"regexp"
)

// Design tokens read by the page. The theme declares them; page styles only
// ever reference them.
const (
	TokenBackground = "--color-background"
	TokenForeground = "--color-foreground"
	TokenPrimary    = "--color-primary"
	TokenMuted      = "--color-muted"
)

// ThemeSheetID identifies the design token sheet.
const ThemeSheetID = "theme"

// Theme holds the values of the design tokens.
type Theme struct {
	Background string
	Foreground string
	Primary    string
	Muted      string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	Background: "#ffffff",
	Foreground: "#0a0a0a",
	Primary:    "#030213",
	Muted:      "#ececf0",
}

// Colors may be hex, named or functional notation. Anything that could
// close a declaration or the style element is rejected.
var colorValue = regexp.MustCompile(`^[#a-zA-Z0-9(),.%/ -]+$`)

// Validate reports the first token whose value is not a plain color.
func (t Theme) Validate() error {
	for _, tok := range t.tokens() {
		if !colorValue.MatchString(tok.Value) {
			return fmt.Errorf("theme token %s: invalid color %q", tok.Property, tok.Value)
		}
	}
	return nil
}

// WithDefaults fills empty tokens from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	if t.Background == "" {
		t.Background = DefaultTheme.Background
	}
	if t.Foreground == "" {
		t.Foreground = DefaultTheme.Foreground
	}
	if t.Primary == "" {
		t.Primary = DefaultTheme.Primary
	}
	if t.Muted == "" {
		t.Muted = DefaultTheme.Muted
	}
	return t
}

func (t Theme) tokens() []Decl {
	return []Decl{
		{TokenBackground, t.Background},
		{TokenForeground, t.Foreground},
		{TokenPrimary, t.Primary},
		{TokenMuted, t.Muted},
	}
}

// Sheet declares the tokens on :root and the utility classes that consume
// them.
func (t Theme) Sheet() StyleSheet {
	return StyleSheet{
		ID: ThemeSheetID,
		Rules: []Rule{
			{Selector: ":root", Decls: t.tokens()},
			{Selector: ".bg-background", Decls: []Decl{{"background-color", "var(" + TokenBackground + ")"}}},
			{Selector: ".text-foreground", Decls: []Decl{{"color", "var(" + TokenForeground + ")"}}},
			{Selector: ".bg-primary", Decls: []Decl{{"background-color", "var(" + TokenPrimary + ")"}}},
			{Selector: ".text-primary", Decls: []Decl{{"color", "var(" + TokenPrimary + ")"}}},
			{Selector: ".bg-muted", Decls: []Decl{{"background-color", "var(" + TokenMuted + ")"}}},
		},
	}
}

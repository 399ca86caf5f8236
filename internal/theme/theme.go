// Package theme holds the built-in transcript stylesheets and resolves
// caller-supplied theme selections.
package theme

import "strings"

// Definition is a named stylesheet.
type Definition struct {
	Name string `json:"name"`
	CSS  string `json:"css"`
}

// Built-in theme names.
const (
	Dark  = "dark"
	Light = "light"
)

// DefaultName is the theme used when the caller selects nothing.
const DefaultName = Dark

var builtins = map[string]Definition{
	Dark: {
		Name: Dark,
		CSS: `
:root {
  color-scheme: dark;
  --background-primary: #313338;
  --background-secondary: #2b2d31;
  --background-secondary-alt: #232428;
  --text-normal: #dcddde;
  --text-muted: #a3a6aa;
  --interactive-hover: #3c3f45;
  --interactive-active: #50545d;
  --mention-background: rgba(88, 101, 242, 0.3);
  --mention-border: rgba(88, 101, 242, 0.6);
}
body {
  background: var(--background-primary);
  color: var(--text-normal);
  font-family: "gg sans", "Noto Sans", "Helvetica Neue", Helvetica, Arial, sans-serif;
  margin: 0;
  padding: 0;
}
`,
	},
	Light: {
		Name: Light,
		CSS: `
:root {
  color-scheme: light;
  --background-primary: #f2f3f5;
  --background-secondary: #ffffff;
  --background-secondary-alt: #f8f9fd;
  --text-normal: #2e3338;
  --text-muted: #4f5660;
  --interactive-hover: #dbdee1;
  --interactive-active: #e3e5e8;
  --mention-background: rgba(88, 101, 242, 0.16);
  --mention-border: rgba(88, 101, 242, 0.35);
}
body {
  background: var(--background-primary);
  color: var(--text-normal);
  font-family: "gg sans", "Noto Sans", "Helvetica Neue", Helvetica, Arial, sans-serif;
  margin: 0;
  padding: 0;
}
`,
	},
}

// IsBuiltIn reports whether name is a built-in theme.
func IsBuiltIn(name string) bool {
	_, ok := builtins[strings.ToLower(name)]
	return ok
}

// Resolve maps a theme selection to its definition. An empty name means
// the default; an unknown name becomes a custom theme with empty CSS
// under that name. Custom definitions pass through with their name
// defaulted to "custom".
func Resolve(name, customCSS string) Definition {
	if customCSS != "" {
		if name == "" {
			name = "custom"
		}
		return Definition{Name: name, CSS: customCSS}
	}
	if name == "" {
		name = DefaultName
	}
	normalized := strings.ToLower(name)
	if def, ok := builtins[normalized]; ok {
		return def
	}
	return Definition{Name: normalized}
}

package theme

import (
	"sort"
	"strings"
)

// Palette paletas de color claro/oscuro para la hoja de estilos publicada.
// Las claves son nombres de variable CSS sin el prefijo "--".
type Palette struct {
	Light map[string]string `yaml:"light"`
	Dark  map[string]string `yaml:"dark"`
}

// Orden canónico de emisión de variables; las claves extra de la paleta del
// usuario se emiten después en orden alfabético para que el CSS generado sea
// estable entre corridas.
var varOrder = []string{"brand", "bg", "bg2", "ink", "muted", "card", "border", "accent"}

// Default paleta incorporada, usada cuando no hay archivo de paleta o cuando
// este no define alguna clave.
func Default() Palette {
	return Palette{
		Light: map[string]string{
			"brand":  "#E2001A",
			"bg":     "#ffffff",
			"bg2":    "#f5f5f7",
			"ink":    "#1c1c1e",
			"muted":  "#6b7280",
			"card":   "#f8f9fb",
			"border": "#e5e7eb",
			"accent": "#111111",
		},
		Dark: map[string]string{
			"bg":     "#1c1c1e",
			"bg2":    "#161618",
			"ink":    "#f2f2f7",
			"muted":  "#a1a1a6",
			"card":   "#2c2c2e",
			"border": "#3a3a3c",
			"accent": "#f2f2f7",
		},
	}
}

// Merge superpone la paleta del usuario sobre los defaults. Los valores
// vacíos no pisan el default, y la variante oscura hereda brand de la clara
// cuando no define el suyo propio.
func Merge(p Palette) Palette {
	out := Default()
	for k, v := range p.Light {
		if v != "" {
			out.Light[k] = v
		}
	}
	for k, v := range p.Dark {
		if v != "" {
			out.Dark[k] = v
		}
	}
	if out.Dark["brand"] == "" {
		out.Dark["brand"] = out.Light["brand"]
	}
	return out
}

// RenderCSS produce la hoja de estilos: un bloque :root con la paleta clara y
// un bloque html[data-theme="dark"] con la oscura, como custom properties.
func RenderCSS(p Palette) string {
	var b strings.Builder
	b.WriteString(":root{\n")
	writeVars(&b, p.Light)
	b.WriteString("}\nhtml[data-theme=\"dark\"]{\n")
	writeVars(&b, p.Dark)
	b.WriteString("}\n")
	return b.String()
}

func writeVars(b *strings.Builder, vars map[string]string) {
	emitted := make(map[string]bool, len(vars))
	for _, k := range varOrder {
		if v, ok := vars[k]; ok && v != "" {
			b.WriteString("  --" + k + ":" + v + ";\n")
			emitted[k] = true
		}
	}
	extra := make([]string, 0, len(vars))
	for k, v := range vars {
		if !emitted[k] && v != "" {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		b.WriteString("  --" + k + ":" + vars[k] + ";\n")
	}
}

// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
)

// TemplateFuncs returns the template functions shared by every output
// template. The map converts directly to html/template.FuncMap.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Colour formatting.
		"digits": digitsFunc,
		"rgb":    rgbFunc,
		"ratio":  ratioFunc,

		// Pairing metadata.
		"guidelines": guidelinesFunc,
		"passes":     passesFunc,

		// String manipulation (pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// digitsFunc returns a hex token without its leading #, the form used in
// class names.
func digitsFunc(hex string) string {
	return strings.TrimPrefix(hex, "#")
}

// rgbFunc returns a hex token in CSS rgb(r,g,b) form.
func rgbFunc(hex string) (string, error) {
	c, ok := colour.ParseHex(hex)
	if !ok {
		return "", fmt.Errorf("%w: %q", colour.ErrInvalidHex, hex)
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B), nil
}

// ratioFunc formats a contrast ratio to two decimals.
func ratioFunc(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// guidelinesFunc returns the space separated names of the guidelines g
// passes, in name order.
func guidelinesFunc(g pairing.Guidelines) string {
	var passed []string
	for _, name := range g.Names() {
		if g[name] {
			passed = append(passed, name)
		}
	}
	return strings.Join(passed, " ")
}

// passesFunc reports whether g passes the named guideline.
//
//	{{ if passes .ContrastGuidelines "AAA" }}...{{ end }}
func passesFunc(g pairing.Guidelines, name string) bool {
	return g[name]
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
//
//	{{ .Hex | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
//
//	{{ .Text | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}

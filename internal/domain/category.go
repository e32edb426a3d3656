package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// Category is a user-defined tag. Value is the slug tasks reference and
// never changes after creation, even when Name does.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// CategoryPatch is a partial category update. The slug is not patchable.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch into c
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	return c
}

// BuiltinCategory is one entry of the fixed category table
type BuiltinCategory struct {
	Slug  string
	Label string
	Color string
}

// Built-in slugs, as persisted in task records
const (
	CategoryWork     = "trabalho"
	CategoryPersonal = "pessoal"
	CategoryStudies  = "estudos"
	CategoryHealth   = "saude"
	CategoryFinances = "financas"
	CategoryOther    = "outros"
)

// FilterAll is the wildcard value for category and status filters
const FilterAll = "all"

// DefaultCategoryColor is the color suggested for new custom categories
const DefaultCategoryColor = "#4b5563"

// BuiltinCategories is the fixed table, in display order
var BuiltinCategories = []BuiltinCategory{
	{Slug: CategoryWork, Label: "Work", Color: "#3b82f6"},
	{Slug: CategoryPersonal, Label: "Personal", Color: "#8b5cf6"},
	{Slug: CategoryStudies, Label: "Studies", Color: "#10b981"},
	{Slug: CategoryHealth, Label: "Health", Color: "#ef4444"},
	{Slug: CategoryFinances, Label: "Finances", Color: "#f59e0b"},
	{Slug: CategoryOther, Label: "Other", Color: "#6b7280"},
}

// FallbackColor is used for unknown or orphaned category references
var FallbackColor = BuiltinCategories[len(BuiltinCategories)-1].Color

// LookupBuiltin finds a built-in category by slug
func LookupBuiltin(slug string) (BuiltinCategory, bool) {
	for _, c := range BuiltinCategories {
		if c.Slug == slug {
			return c, true
		}
	}
	return BuiltinCategory{}, false
}

// BuiltinSlugs returns the built-in slugs in display order
func BuiltinSlugs() []string {
	slugs := make([]string, len(BuiltinCategories))
	for i, c := range BuiltinCategories {
		slugs[i] = c.Slug
	}
	return slugs
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives the stable identifier for a category name:
// trimmed, lowercased, whitespace runs replaced by underscores.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// Humanize turns a slug into a display label ("side_project" -> "Side project")
func Humanize(slug string) string {
	if slug == "" {
		return ""
	}
	s := strings.ReplaceAll(slug, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ValidColor reports whether v is a #rrggbb hex color
func ValidColor(v string) bool {
	if len(v) != 7 || v[0] != '#' {
		return false
	}
	_, err := colorful.Hex(v)
	return err == nil
}

// ContrastColor picks black or white text for a badge with the given
// background. Uses perceived luminance (0.299 R + 0.587 G + 0.114 B).
func ContrastColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	r, g, b := c.RGB255()
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

package domain

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Side Project", "side_project"},
		{"  Home   Office ", "home_office"},
		{"Gym", "gym"},
		{"tab\tseparated", "tab_separated"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHumanize(t *testing.T) {
	if got := Humanize("side_project"); got != "Side project" {
		t.Errorf("Humanize() = %q", got)
	}
	if got := Humanize("ética_x"); got != "Ética x" {
		t.Errorf("Humanize(accented) = %q", got)
	}
	if got := Humanize(""); got != "" {
		t.Errorf("Humanize(\"\") = %q", got)
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		name string
		bg   string
		want string
	}{
		{"white background", "#ffffff", "#000000"},
		{"black background", "#000000", "#ffffff"},
		{"yellow is light", "#f59e0b", "#000000"},
		{"blue is dark", "#3b82f6", "#ffffff"},
		{"gray default is dark", DefaultCategoryColor, "#ffffff"},
		{"garbage falls back to white", "not-a-color", "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastColor(tt.bg); got != tt.want {
				t.Errorf("ContrastColor(%q) = %q, want %q", tt.bg, got, tt.want)
			}
		})
	}
}

func TestValidColor(t *testing.T) {
	valid := []string{"#000000", "#4b5563", "#FFAA00"}
	invalid := []string{"", "000000", "#fff", "#gggggg", "#12345678"}

	for _, v := range valid {
		if !ValidColor(v) {
			t.Errorf("ValidColor(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if ValidColor(v) {
			t.Errorf("ValidColor(%q) = true, want false", v)
		}
	}
}

func TestBuiltinTable(t *testing.T) {
	slugs := BuiltinSlugs()
	if len(slugs) != 6 {
		t.Fatalf("expected 6 built-in categories, got %d", len(slugs))
	}
	if slugs[len(slugs)-1] != CategoryOther {
		t.Errorf("last built-in should be %q, got %q", CategoryOther, slugs[len(slugs)-1])
	}
	if FallbackColor != "#6b7280" {
		t.Errorf("FallbackColor = %q", FallbackColor)
	}
	if c, ok := LookupBuiltin(CategoryWork); !ok || c.Color != "#3b82f6" {
		t.Errorf("LookupBuiltin(work) = %+v, %v", c, ok)
	}
	if _, ok := LookupBuiltin("gym"); ok {
		t.Error("gym is not a built-in")
	}
}

func TestCategoryPatch_KeepsSlug(t *testing.T) {
	c := Category{ID: "c1", Name: "Gym", Value: "gym", Color: "#111111"}
	name, color := "Fitness", "#222222"

	got := CategoryPatch{Name: &name, Color: &color}.Apply(c)

	if got.Value != "gym" {
		t.Errorf("slug changed to %q", got.Value)
	}
	if got.Name != "Fitness" || got.Color != "#222222" {
		t.Errorf("Apply() = %+v", got)
	}
}

package domain

import (
	"testing"
	"time"
)

func TestSort_Toggle(t *testing.T) {
	tests := []struct {
		name      string
		initial   Sort
		toggleTo  SortField
		wantField SortField
		wantOrder SortOrder
	}{
		{
			name:      "toggle to new field sets asc",
			initial:   Sort{Field: SortByDue, Order: SortDesc},
			toggleTo:  SortByTitle,
			wantField: SortByTitle,
			wantOrder: SortAsc,
		},
		{
			name:      "toggle same field asc to desc",
			initial:   Sort{Field: SortByDue, Order: SortAsc},
			toggleTo:  SortByDue,
			wantField: SortByDue,
			wantOrder: SortDesc,
		},
		{
			name:      "toggle same field desc to asc",
			initial:   Sort{Field: SortByDue, Order: SortDesc},
			toggleTo:  SortByDue,
			wantField: SortByDue,
			wantOrder: SortAsc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.initial
			s.Toggle(tt.toggleTo)

			if s.Field != tt.wantField {
				t.Errorf("Toggle() field = %v, want %v", s.Field, tt.wantField)
			}
			if s.Order != tt.wantOrder {
				t.Errorf("Toggle() order = %v, want %v", s.Order, tt.wantOrder)
			}
		})
	}
}

func TestSort_Apply_Due(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	tasks := []Task{
		{ID: "a", DueDate: day(10)},
		{ID: "b"},
		{ID: "c", DueDate: day(2)},
		{ID: "d", DueDate: day(5)},
	}

	s := Sort{Field: SortByDue, Order: SortAsc}
	got := ids(s.Apply(tasks))
	want := []string{"c", "d", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Apply(due asc) = %v, want %v", got, want)
		}
	}

	if tasks[0].ID != "a" {
		t.Error("Apply() must not reorder the input slice")
	}
}

func TestSort_Apply_UnknownFieldKeepsOrder(t *testing.T) {
	tasks := []Task{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	got := ids((&Sort{}).Apply(tasks))
	if got[0] != "x" || got[1] != "y" || got[2] != "z" {
		t.Errorf("Apply() with no field = %v", got)
	}
}

func TestSort_Apply_TitleDesc(t *testing.T) {
	tasks := []Task{{ID: "1", Title: "alpha"}, {ID: "2", Title: "gamma"}, {ID: "3", Title: "beta"}}
	got := ids((&Sort{Field: SortByTitle, Order: SortDesc}).Apply(tasks))
	want := []string{"2", "3", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Apply(title desc) = %v, want %v", got, want)
		}
	}
}

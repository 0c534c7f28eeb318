package usecase

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestIngredientParser_Parse(t *testing.T) {
	p := NewIngredientParser(nil)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty text",
			input: "   ",
			want:  []string{},
		},
		{
			name:  "simple list",
			input: "Water, Sugar, Salt",
			want:  []string{"Water", "Sugar", "Salt"},
		},
		{
			name:  "header percentages and allergen markers",
			input: "Ingredients: Water, sugar (12%), _milk_ powder 3.5 %, salt.",
			want:  []string{"Water", "sugar", "milk powder", "salt"},
		},
		{
			name:  "nested lists stay together",
			input: "Chocolate (cocoa mass, sugar, emulsifier (soy lecithin)); E322, vanilla",
			want:  []string{"Chocolate (cocoa mass, sugar, emulsifier (soy lecithin))", "E322", "vanilla"},
		},
		{
			name:  "empty entries dropped",
			input: ",,water,, ;",
			want:  []string{"water"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIngredientParser_LongIngredient(t *testing.T) {
	p := NewIngredientParser(nil)
	long := strings.Repeat("word ", 40)

	got := p.Parse(long)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if len(got[0]) > maxIngredientLength {
		t.Errorf("len(got[0]) = %d, want <= %d", len(got[0]), maxIngredientLength)
	}
	if strings.HasSuffix(got[0], " ") {
		t.Errorf("got[0] = %q, want trimmed", got[0])
	}
}

func TestIngredientParser_LongIngredientMultibyte(t *testing.T) {
	p := NewIngredientParser(nil)
	long := strings.Repeat("a", 99) + "éé"

	got := p.Parse(long)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !utf8.ValidString(got[0]) {
		t.Errorf("got[0] = %q, want valid UTF-8", got[0])
	}
	if len(got[0]) > maxIngredientLength {
		t.Errorf("len(got[0]) = %d, want <= %d", len(got[0]), maxIngredientLength)
	}
	if want := strings.Repeat("a", 99); got[0] != want {
		t.Errorf("got[0] = %q, want %q", got[0], want)
	}
}

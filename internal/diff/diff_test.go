package diff

import (
	"reflect"
	"testing"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: " \t\n  ",
			want:  nil,
		},
		{
			name:  "simple words",
			input: "the cat sat",
			want:  []string{"the", "cat", "sat"},
		},
		{
			name:  "runs of whitespace collapse",
			input: "  hello \t\n world  ",
			want:  []string{"hello", "world"},
		},
		{
			name:  "punctuation and case preserved",
			input: "Hello, hello HELLO.",
			want:  []string{"Hello,", "hello", "HELLO."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fields(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name        string
		old         []string
		new         []string
		wantAdded   []string
		wantRemoved []string
	}{
		{
			name:        "both empty",
			old:         nil,
			new:         nil,
			wantAdded:   []string{},
			wantRemoved: []string{},
		},
		{
			name:        "identical sequences",
			old:         []string{"a", "b", "a"},
			new:         []string{"a", "b", "a"},
			wantAdded:   []string{},
			wantRemoved: []string{},
		},
		{
			name:        "reordered only",
			old:         []string{"one", "two", "three"},
			new:         []string{"three", "one", "two"},
			wantAdded:   []string{},
			wantRemoved: []string{},
		},
		{
			name:        "extra occurrence added",
			old:         []string{"a"},
			new:         []string{"a", "a"},
			wantAdded:   []string{"a"},
			wantRemoved: []string{},
		},
		{
			name:        "missing occurrence removed",
			old:         []string{"a", "a"},
			new:         []string{"a"},
			wantAdded:   []string{},
			wantRemoved: []string{"a"},
		},
		{
			name:        "multiple units of excess",
			old:         []string{"x"},
			new:         []string{"x", "x", "x"},
			wantAdded:   []string{"x", "x"},
			wantRemoved: []string{},
		},
		{
			name:        "replacement plus duplication",
			old:         []string{"the", "cat", "sat"},
			new:         []string{"the", "dog", "sat", "sat"},
			wantAdded:   []string{"dog", "sat"},
			wantRemoved: []string{"cat"},
		},
		{
			name:        "added order follows new sequence",
			old:         []string{},
			new:         []string{"z", "a", "z", "m"},
			wantAdded:   []string{"z", "z", "a", "m"},
			wantRemoved: []string{},
		},
		{
			name:        "removed order follows old sequence",
			old:         []string{"z", "a", "z", "m"},
			new:         []string{},
			wantAdded:   []string{},
			wantRemoved: []string{"z", "z", "a", "m"},
		},
		{
			name:        "case sensitive",
			old:         []string{"Word"},
			new:         []string{"word"},
			wantAdded:   []string{"word"},
			wantRemoved: []string{"Word"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := Words(tt.old, tt.new)
			if !reflect.DeepEqual(added, tt.wantAdded) {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if !reflect.DeepEqual(removed, tt.wantRemoved) {
				t.Errorf("removed = %v, want %v", removed, tt.wantRemoved)
			}
		})
	}
}

func TestWordsSymmetry(t *testing.T) {
	pairs := [][2][]string{
		{{"a", "b"}, {"b", "c", "c"}},
		{{"the", "cat", "sat"}, {"the", "dog", "sat", "sat"}},
		{{}, {"x", "y"}},
		{{"q", "q", "q"}, {"q"}},
	}
	for _, p := range pairs {
		addedAB, removedAB := Words(p[0], p[1])
		addedBA, removedBA := Words(p[1], p[0])
		if !reflect.DeepEqual(addedAB, removedBA) {
			t.Errorf("Words(%v,%v).added = %v, want %v", p[0], p[1], addedAB, removedBA)
		}
		if !reflect.DeepEqual(removedAB, addedBA) {
			t.Errorf("Words(%v,%v).removed = %v, want %v", p[0], p[1], removedAB, addedBA)
		}
	}
}

func TestWhitespaceOnlyChange(t *testing.T) {
	oldText := "hello  world"
	newText := "hello world"
	if oldText == newText {
		t.Fatal("snapshots should differ as raw strings")
	}
	added, removed := Words(Fields(oldText), Fields(newText))
	if len(added) != 0 || len(removed) != 0 {
		t.Errorf("whitespace-only change produced delta: added=%v removed=%v", added, removed)
	}
}

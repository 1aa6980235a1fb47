package lino

import "testing"

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatQuoting(t *testing.T) {
	tests := []struct {
		name  string
		entry *Node
		want  string
	}{
		{
			name:  "plain tokens stay bare",
			entry: Compound(Leaf("a"), Leaf("b")),
			want:  "a b",
		},
		{
			name:  "colon token quoted",
			entry: Compound(Leaf("host:80"), Leaf("up")),
			want:  "'host:80' up",
		},
		{
			name:  "space token quoted",
			entry: Leaf("two words"),
			want:  "'two words'",
		},
		{
			name:  "single quote falls back to double",
			entry: Leaf("don't"),
			want:  `"don't"`,
		},
		{
			name:  "empty token quoted",
			entry: Leaf(""),
			want:  "''",
		},
		{
			name:  "definition label stays bare",
			entry: Compound(Leaf("3:"), Leaf("a"), Leaf("b")),
			want:  "3: a b",
		},
		{
			name:  "label shape elsewhere is quoted",
			entry: Compound(Leaf("a"), Leaf("3:")),
			want:  "a '3:'",
		},
		{
			name:  "nested compound parenthesized",
			entry: Compound(Compound(Leaf("a"), Leaf("b")), Leaf("c")),
			want:  "(a b) c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format([]*Node{tt.entry})
			if got != tt.want+"\n" {
				t.Errorf("Format() = %q, want %q", got, tt.want+"\n")
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	input := "(a b) c\n1: x y\n'with:colon' z\n"
	entries, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := Format(entries); got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}

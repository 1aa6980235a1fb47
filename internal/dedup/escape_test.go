package dedup

import (
	"testing"

	"github.com/link-foundation/deduplino/internal/lino"
)

func linoProbe(text string) bool {
	_, err := lino.Parse(text)
	return err == nil
}

func TestEscapeColonTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "timestamp",
			input: "2025-07-25T21:32:46Z foo",
			want:  "'2025-07-25T21:32:46Z' foo",
		},
		{
			name:  "host port",
			input: "connect host:8080 ok",
			want:  "connect 'host:8080' ok",
		},
		{
			name:  "already quoted left alone",
			input: "'a:b' c",
			want:  "'a:b' c",
		},
		{
			name:  "no colons untouched",
			input: "plain tokens here",
			want:  "plain tokens here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeColonTokens(tt.input); got != tt.want {
				t.Errorf("escapeColonTokens() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeClassifiedTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "stray paren inside word",
			input: "calling foo(bar now",
			want:  "calling 'foo(bar' now",
		},
		{
			name:  "punctuation run untouched",
			input: ":: -- x y",
			want:  ":: -- x y",
		},
		{
			name:  "quoted with trailing punctuation untouched",
			input: "'done', next x",
			want:  "'done', next x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeClassifiedTokens(tt.input); got != tt.want {
				t.Errorf("escapeClassifiedTokens() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeAllTokens(t *testing.T) {
	got := escapeAllTokens("foo bar(baz !! 'kept'")
	want := "'foo' 'bar(baz' !! 'kept'"
	if got != want {
		t.Errorf("escapeAllTokens() = %q, want %q", got, want)
	}
}

func TestAutoEscapeStopsAtFirstParsingStage(t *testing.T) {
	// Stage one fixes the colon; the result parses, so stage two's paren
	// quoting must not appear.
	got := AutoEscape("a:b c", linoProbe)
	want := "'a:b' c"
	if got != want {
		t.Errorf("AutoEscape() = %q, want %q", got, want)
	}
	if !linoProbe(got) {
		t.Error("stage one output should parse")
	}
}

func TestAutoEscapeFallsThroughStages(t *testing.T) {
	// A stray paren is untouched by stage one, quoted by stage two.
	got := AutoEscape("word(tail x", linoProbe)
	want := "'word(tail' x"
	if got != want {
		t.Errorf("AutoEscape() = %q, want %q", got, want)
	}
	if !linoProbe(got) {
		t.Error("stage two output should parse")
	}
}

func TestAutoEscapeTotalFallbackUnchecked(t *testing.T) {
	// Pure punctuation runs survive every stage, so irreparable bracket
	// noise comes back unparseable; the caller owns that failure.
	got := AutoEscape("))((", linoProbe)
	if got != "))((" {
		t.Errorf("AutoEscape() = %q, want input unchanged", got)
	}
	if linoProbe(got) {
		t.Error("unbalanced bracket noise must still fail to parse")
	}
}

func TestAutoEscapeDeterministic(t *testing.T) {
	input := "2025-07-25T21:32:46Z start\nfoo(bar baz\nplain line"
	first := AutoEscape(input, linoProbe)
	for i := 0; i < 5; i++ {
		if got := AutoEscape(input, linoProbe); got != first {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

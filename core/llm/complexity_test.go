package llm

import "testing"

func TestClassifyTaskComplexity_ShortInputAlwaysSimple(t *testing.T) {
	t.Parallel()

	inputs := []string{"hello", "hi", "prove it", "optimize this now"}
	for _, input := range inputs {
		if got := ClassifyTaskComplexity(input); got != ComplexitySimple {
			t.Errorf("ClassifyTaskComplexity(%q) = %s, want simple", input, got)
		}
	}
}

func TestClassifyTaskComplexity_KeywordTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Complexity
	}{
		{
			"reasoning",
			"please work through this logic puzzle step by step for me",
			ComplexityReasoning,
		},
		{
			"complex",
			"help me refactor the service architecture for better throughput",
			ComplexityComplex,
		},
		{
			"moderate",
			"explain the difference between these two approaches please",
			ComplexityModerate,
		},
		{
			"simple keyword",
			"thank you so much for that",
			ComplexitySimple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTaskComplexity(tt.input); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyTaskComplexity_PriorityOrder(t *testing.T) {
	t.Parallel()

	// Contains both a complex keyword (refactor) and a moderate keyword
	// (explain); complex is checked first and wins.
	input := "explain how you would refactor this module safely"
	if got := ClassifyTaskComplexity(input); got != ComplexityComplex {
		t.Errorf("got %s, want complex", got)
	}

	// Reasoning outranks complex.
	input = "prove this algorithm terminates and refactor it afterwards"
	if got := ClassifyTaskComplexity(input); got != ComplexityReasoning {
		t.Errorf("got %s, want reasoning", got)
	}
}

func TestClassifyTaskComplexity_LengthFallback(t *testing.T) {
	t.Parallel()

	short := "one two three four five"
	if got := ClassifyTaskComplexity(short); got != ComplexitySimple {
		t.Errorf("short fallback = %s, want simple", got)
	}

	medium := "aa bb cc dd ee ff gg hh ii jj kk ll mm nn oo pp"
	if got := ClassifyTaskComplexity(medium); got != ComplexityModerate {
		t.Errorf("medium fallback = %s, want moderate", got)
	}

	long := ""
	for i := 0; i < 60; i++ {
		long += "word "
	}
	if got := ClassifyTaskComplexity(long); got != ComplexityComplex {
		t.Errorf("long fallback = %s, want complex", got)
	}
}

func TestClassifyTaskComplexity_Pure(t *testing.T) {
	t.Parallel()

	input := "explain the tradeoffs between caching strategies in detail"
	first := ClassifyTaskComplexity(input)
	for i := 0; i < 10; i++ {
		if got := ClassifyTaskComplexity(input); got != first {
			t.Fatal("classification should be deterministic")
		}
	}
}

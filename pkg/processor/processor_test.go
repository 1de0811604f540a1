package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xhad/copyscan/pkg/processor"
)

func TestProcessor_Tokenize(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"sentence", "The quick brown fox jumps over the lazy dog.", []string{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}},
		{"single letters dropped", "a b cd e", []string{"cd"}},
		{"punctuation and case", "Hello, WORLD!! hello-world", []string{"hello", "world", "hello", "world"}},
		{"unicode letters", "Über straße café", []string{"über", "straße", "café"}},
		{"fullwidth folded", "ＡＢＣ", []string{"abc"}},
		{"empty", "", nil},
		{"whitespace", " \n\t ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Tokenize(tt.text))
		})
	}
}

func TestProcessor_RemoveStopwords(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		RemoveStopwords: true,
		CustomStopwords: []string{"Document"},
	})

	got := p.Tokenize("This is a test document for the processor.")
	assert.Equal(t, []string{"this", "test", "processor"}, got)
}

func TestProcessor_Stem(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{Stem: true}).WithLanguage("english")
	assert.Equal(t, []string{"run", "run"}, p.Tokenize("running runs"))

	// No language means no stemming.
	p = processor.NewWithConfig(processor.ProcessorConfig{Stem: true})
	assert.Equal(t, []string{"running"}, p.Tokenize("running"))

	// Unsupported languages leave terms untouched.
	p = p.WithLanguage("klingon")
	assert.Equal(t, []string{"running"}, p.Tokenize("running"))
}

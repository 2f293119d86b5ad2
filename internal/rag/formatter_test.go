package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocs_AnnotatesSourceAndTrimCount(t *testing.T) {
	chunks := []Chunk{
		{
			Text:     "  Model ID: ram_power-wagon\nCox Trims: Laramie, Big Horn  ",
			Metadata: Metadata{"source": "ram_power-wagon", "trim_count": 2},
		},
		{
			Text:     "Model ID: audi_a3",
			Metadata: Metadata{"source": "audi_a3", "trim_count": 0},
		},
	}

	got := FormatDocs(chunks)
	want := "[ram_power-wagon] Model ID: ram_power-wagon\nCox Trims: Laramie, Big Horn\n(This vehicle has 2 Cox trim(s) mapped)\n\n[audi_a3] Model ID: audi_a3"
	assert.Equal(t, want, got)
}

func TestFormatDocs_FallbackSource(t *testing.T) {
	got := FormatDocs([]Chunk{{Text: "orphan chunk"}})
	assert.Equal(t, "[kb] orphan chunk", got)
}

func TestFormatDocs_PreservesOrderAndDuplicates(t *testing.T) {
	chunk := Chunk{Text: "same", Metadata: Metadata{"source": "m1"}}
	got := FormatDocs([]Chunk{chunk, chunk})
	assert.Equal(t, "[m1] same\n\n[m1] same", got)
}

func TestFormatDocs_TrimCountFromStoredFloat(t *testing.T) {
	// JSON round-trips through a persistent store decode numbers as float64.
	got := FormatDocs([]Chunk{{
		Text:     "text",
		Metadata: Metadata{"source": "m1", "trim_count": float64(3)},
	}})
	assert.Contains(t, got, "(This vehicle has 3 Cox trim(s) mapped)")
}

func TestFormatDocs_Empty(t *testing.T) {
	assert.Equal(t, "", FormatDocs(nil))
}

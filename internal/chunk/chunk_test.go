package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortDocumentSingleChunk(t *testing.T) {
	chunks := Split("short doc", 100, 3)

	require.Len(t, chunks, 1)
	assert.Equal(t, "start", chunks[0].Label)
	assert.Equal(t, "short doc", chunks[0].Text)
}

func TestSplit_LongDocumentThreeWindows(t *testing.T) {
	doc := strings.Repeat("a", 100) + strings.Repeat("b", 100) + strings.Repeat("c", 100) +
		strings.Repeat("d", 100) + strings.Repeat("e", 100)

	chunks := Split(doc, 100, 3)

	require.Len(t, chunks, 3)
	assert.Equal(t, "start", chunks[0].Label)
	assert.Equal(t, strings.Repeat("a", 100), chunks[0].Text)
	assert.Equal(t, "middle", chunks[1].Label)
	assert.Equal(t, strings.Repeat("c", 100), chunks[1].Text)
	assert.Equal(t, "end", chunks[2].Label)
	assert.Equal(t, strings.Repeat("e", 100), chunks[2].Text)
}

func TestSplit_NoOverlappingWindows(t *testing.T) {
	// Slightly longer than one window: middle and end would overlap the
	// start window, so only the start window is emitted.
	doc := strings.Repeat("x", 150)

	chunks := Split(doc, 100, 3)

	require.Len(t, chunks, 1)
	assert.Equal(t, "start", chunks[0].Label)
}

func TestSplit_TwoWindowsWhenMiddleDoesNotFit(t *testing.T) {
	// Twice the window size: no room for a distinct middle window, but the
	// end window exactly abuts the start window.
	doc := strings.Repeat("a", 100) + strings.Repeat("b", 100)

	chunks := Split(doc, 100, 3)

	require.Len(t, chunks, 2)
	assert.Equal(t, "start", chunks[0].Label)
	assert.Equal(t, "end", chunks[1].Label)
	assert.Equal(t, strings.Repeat("b", 100), chunks[1].Text)
}

func TestSplit_MaxChunksCap(t *testing.T) {
	doc := strings.Repeat("x", 10000)

	chunks := Split(doc, 100, 2)

	require.Len(t, chunks, 2)
	assert.Equal(t, "start", chunks[0].Label)
	assert.Equal(t, "middle", chunks[1].Label)
}

func TestSplit_Defaults(t *testing.T) {
	doc := strings.Repeat("x", DefaultMaxSize*5)

	chunks := Split(doc, 0, 0)

	require.Len(t, chunks, DefaultMaxChunks)
	for _, c := range chunks {
		assert.Len(t, c.Text, DefaultMaxSize)
	}
}

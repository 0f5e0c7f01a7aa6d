// Package chunk slices oversized documents into a bounded number of
// size-capped windows for AI extraction. Purely a slicing strategy; it does
// no parsing.
package chunk

// Chunk is one window of a document.
type Chunk struct {
	Label string // "start", "middle", or "end"
	Text  string
}

// DefaultMaxSize is the default window size in bytes.
const DefaultMaxSize = 12000

// DefaultMaxChunks is the default cap on emitted windows.
const DefaultMaxChunks = 3

// Split produces up to maxChunks non-overlapping windows of text: the start
// of the document, then (if the document is long enough) a middle window,
// then an end window. Short documents yield a single chunk containing the
// whole text.
func Split(text string, maxSize, maxChunks int) []Chunk {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}

	if len(text) <= maxSize {
		return []Chunk{{Label: "start", Text: text}}
	}

	chunks := []Chunk{{Label: "start", Text: text[:maxSize]}}
	covered := maxSize // offset where the last emitted window stops

	// Middle window, centered, only when it clears the start window.
	midStart := len(text)/2 - maxSize/2
	if len(chunks) < maxChunks && midStart >= covered {
		chunks = append(chunks, Chunk{Label: "middle", Text: text[midStart : midStart+maxSize]})
		covered = midStart + maxSize
	}

	// End window, only when it clears every earlier window.
	endStart := len(text) - maxSize
	if len(chunks) < maxChunks && endStart >= covered {
		chunks = append(chunks, Chunk{Label: "end", Text: text[endStart:]})
	}

	return chunks
}

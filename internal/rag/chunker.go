package rag

// DefaultChunkSize is the maximum chunk length in characters.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the number of characters adjacent chunks share.
const DefaultChunkOverlap = 100

// Splitter cuts document text into bounded, overlapping chunks. It prefers
// breaking at paragraph, then line, then word boundaries, and falls back to
// a raw character cut only when a single unit exceeds the chunk size.
//
// Every chunk is an exact substring of the source text and consecutive
// chunks overlap by exactly Overlap characters, so concatenating the chunks
// with overlaps collapsed reconstructs the original text.
type Splitter struct {
	chunkSize int
	overlap   int
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) SplitterOption {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks.
func WithChunkOverlap(overlap int) SplitterOption {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// NewSplitter creates a splitter with the given options.
func NewSplitter(opts ...SplitterOption) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}
	return s
}

// ChunkSize returns the configured maximum chunk length.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured chunk overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split cuts one document into chunks. Each chunk carries its own copy of
// the document metadata; text shorter than the chunk size yields a single
// chunk with no overlap.
func (s *Splitter) Split(doc Document) []Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.chunkSize {
		return []Chunk{{Text: doc.Text, Metadata: doc.Metadata.Clone()}}
	}

	var chunks []Chunk
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, Chunk{
				Text:     string(runes[start:]),
				Metadata: doc.Metadata.Clone(),
			})
			break
		}
		end = s.breakPoint(runes, start, end)
		chunks = append(chunks, Chunk{
			Text:     string(runes[start:end]),
			Metadata: doc.Metadata.Clone(),
		})
		start = end - s.overlap
	}
	return chunks
}

// breakPoint picks the cut position in (minEnd, limit], preferring the last
// paragraph break, then line break, then word break inside the window. The
// window floor keeps chunks from collapsing below the overlap, which would
// stall progress.
func (s *Splitter) breakPoint(runes []rune, start, limit int) int {
	minEnd := start + s.chunkSize/2
	if minEnd <= start+s.overlap {
		minEnd = start + s.overlap + 1
	}
	if minEnd >= limit {
		return limit
	}

	// Paragraph boundary: cut after "\n\n".
	for i := limit; i > minEnd; i-- {
		if runes[i-1] == '\n' && i >= 2 && runes[i-2] == '\n' {
			return i
		}
	}
	// Line boundary: cut after "\n".
	for i := limit; i > minEnd; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	// Word boundary: cut after a space.
	for i := limit; i > minEnd; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	// No natural boundary in the window; hard character cut.
	return limit
}

// SplitAll flattens the chunks of every document, in document order.
func (s *Splitter) SplitAll(docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		chunks = append(chunks, s.Split(doc)...)
	}
	return chunks
}

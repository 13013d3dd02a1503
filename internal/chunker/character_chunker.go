package chunker

import (
	"strconv"
	"strings"

	"concierge/internal/domain"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// CharacterChunker splits text into fixed-size chunks with a fixed overlap so
// that concepts spanning a chunk boundary stay retrievable from at least one
// chunk.
type CharacterChunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewCharacterChunker creates a chunker with the given size and overlap in
// characters. Invalid parameters are clamped; overlap must stay strictly
// below chunk size.
func NewCharacterChunker(chunkSize, chunkOverlap int) *CharacterChunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &CharacterChunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

func (c *CharacterChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	runes := []rune(strings.TrimSpace(document.Content))
	if len(runes) == 0 {
		return nil, nil
	}
	step := c.chunkSize - c.chunkOverlap
	var chunks []domain.Chunk
	idx := 0
	for start := 0; ; start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Source:     domain.SourceGuide,
			Text:       string(runes[start:end]),
			Index:      idx,
		})
		if end == len(runes) {
			break
		}
		idx++
	}
	return chunks, nil
}

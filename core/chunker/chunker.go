// Package chunker splits assembled recipe documents into bounded,
// addressable chunks under a size/overlap policy.
//
// The rendered section delimiter "\n## " is a contract between the document
// assembler and this package: documents with level-2 sections are split
// along their own structure, everything else falls back to fixed windows.
// All sizes and offsets are measured in runes, not bytes, so multi-byte
// content is never split inside a character.
package chunker

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/siherrmann/cookgraph/helper"
	"github.com/siherrmann/cookgraph/model"
)

// SectionDelimiter marks the start of a level-2 section heading in
// assembled documents.
const SectionDelimiter = "\n## "

// mainHeadingTitle is the section title assigned to the leading segment of
// a section-chunked document.
const mainHeadingTitle = "主标题"

// Chunker splits documents according to its configuration.
type Chunker struct {
	Config model.ChunkConfig

	log *slog.Logger
}

// New creates a chunker with the given configuration.
func New(config model.ChunkConfig, logger *slog.Logger) *Chunker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chunker{
		Config: config,
		log:    logger,
	}
}

// ChunkDocuments splits every corpus document into chunks and stores them
// on the corpus. Chunk ids carry a counter that increases monotonically
// across the whole document set, so they are unique corpus-wide.
// Calling it before any document exists is a precondition violation.
func (c *Chunker) ChunkDocuments(corpus *model.Corpus) ([]*model.Chunk, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, helper.NewError("chunk configuration validation", err)
	}
	if len(corpus.Documents) == 0 {
		return nil, helper.NewError("chunk documents", fmt.Errorf("no documents to chunk, build documents first"))
	}

	c.log.Info("Chunking documents",
		"documents", len(corpus.Documents),
		"chunk_size", c.Config.ChunkSize,
		"chunk_overlap", c.Config.ChunkOverlap)

	var chunks []*model.Chunk
	chunkID := 0

	for _, doc := range corpus.Documents {
		docChunks := c.chunkDocument(doc, &chunkID)
		chunks = append(chunks, docChunks...)
	}

	corpus.Chunks = chunks
	c.log.Info("Chunked documents", "chunks", len(chunks))

	return chunks, nil
}

// chunkDocument splits a single document. The shared id counter is advanced
// for every produced chunk.
func (c *Chunker) chunkDocument(doc *model.RecipeDocument, chunkID *int) []*model.Chunk {
	content := []rune(doc.Content)

	if len(content) <= c.Config.ChunkSize {
		return []*model.Chunk{c.newChunk(doc, doc.Content, 0, 1, chunkID, nil)}
	}

	sections := strings.Split(doc.Content, SectionDelimiter)
	if len(sections) <= 1 {
		return c.fixedWindowChunks(doc, content, chunkID)
	}
	return c.sectionChunks(doc, sections, chunkID)
}

// fixedWindowChunks splits content into sliding windows of ChunkSize runes
// advancing by ChunkSize-ChunkOverlap. The last window is clipped to the
// content length.
func (c *Chunker) fixedWindowChunks(doc *model.RecipeDocument, content []rune, chunkID *int) []*model.Chunk {
	stride := c.Config.ChunkSize - c.Config.ChunkOverlap
	totalChunks := ceilDiv(len(content)-1, stride) + 1

	chunks := make([]*model.Chunk, 0, totalChunks)
	for i := 0; i < totalChunks; i++ {
		start := min(i*stride, len(content))
		end := min(start+c.Config.ChunkSize, len(content))

		chunks = append(chunks, c.newChunk(doc, string(content[start:end]), i, totalChunks, chunkID, nil))
	}

	return chunks
}

// sectionChunks emits one chunk per heading-delimited segment. The leading
// segment becomes chunk 0 verbatim; every later segment gets the heading
// delimiter re-prefixed and is tagged with its first line as section title.
func (c *Chunker) sectionChunks(doc *model.RecipeDocument, sections []string, chunkID *int) []*model.Chunk {
	totalChunks := len(sections)

	chunks := make([]*model.Chunk, 0, totalChunks)
	for i, section := range sections {
		content := section
		sectionTitle := mainHeadingTitle
		if i > 0 {
			content = "## " + section
			sectionTitle, _, _ = strings.Cut(section, "\n")
		}

		extra := model.Metadata{"section_title": sectionTitle}
		chunks = append(chunks, c.newChunk(doc, content, i, totalChunks, chunkID, extra))
	}

	return chunks
}

// newChunk builds a chunk inheriting the parent document's metadata,
// overridden with the chunk's own identity and position fields.
func (c *Chunker) newChunk(doc *model.RecipeDocument, content string, index int, totalChunks int, chunkID *int, extra model.Metadata) *model.Chunk {
	id := fmt.Sprintf("%s_chunk_%d", doc.NodeID, *chunkID)
	*chunkID++

	chunkSize := len([]rune(content))

	metadata := doc.Metadata.Clone()
	metadata["chunk_id"] = id
	metadata["parent_id"] = doc.NodeID
	metadata["chunk_index"] = index
	metadata["total_chunks"] = totalChunks
	metadata["chunk_size"] = chunkSize
	metadata["doc_type"] = "chunk"
	for k, v := range extra {
		metadata[k] = v
	}

	return &model.Chunk{
		ChunkID:     id,
		ParentID:    doc.NodeID,
		Content:     content,
		ChunkIndex:  index,
		TotalChunks: totalChunks,
		ChunkSize:   chunkSize,
		Metadata:    metadata,
	}
}

func ceilDiv(a int, b int) int {
	return (a + b - 1) / b
}

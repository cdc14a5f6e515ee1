package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ichef/ChefAPI/internal/adapter/utils"
	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/rag/embedding"
	"github.com/ichef/ChefAPI/internal/rag/vectorDB"
)

//splitter

// boundary separators ordered from best to worst for semantic continuity
var separators = []string{"\n\n", "\n", ". ", " "}

// splitTextIntoChunks windows text into chunks of at most limit characters,
// adjacent chunks sharing exactly overlap characters. Cuts land on the best
// boundary available inside the window, hard cut otherwise. The windowing is
// lossless: concatenating the chunks minus their overlaps reproduces text.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + limit
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		cut := findCut(text, start+overlap+1, end)
		chunks = append(chunks, text[start:cut])
		start = cut - overlap
	}
	return chunks
}

// findCut picks the cut position in (floor, end]: the end of the last
// separator occurrence keeps whole paragraphs or sentences together. The
// floor guards progress - a cut at or below it would make the next chunk
// start before the previous one.
func findCut(text string, floor int, end int) int {
	for _, sep := range separators {
		idx := strings.LastIndex(text[:end], sep)
		if idx >= 0 && idx+len(sep) > floor {
			return idx + len(sep)
		}
	}
	// hard cut, backed onto a rune boundary so a multibyte character is
	// never split across chunks
	cut := end
	for cut-1 > floor && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

func extractText(url string, contentType commonModels.DocType) ([]rawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(url)
	case commonModels.DOCX:
		return extractdocxTxtRtf(url)

	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// PrepareChunks splits each page separately, so no chunk ever crosses a page
// or document boundary. Chunk ids are derived from document name, page and
// order: re-ingesting an unchanged document produces identical ids and the
// upsert replaces instead of appending.
func PrepareChunks(pages []rawPage, doc commonModels.Document, embeddingModel string) []commonModels.DocChunk {
	var allChunks []commonModels.DocChunk

	for _, page := range pages {
		stringChunks := splitTextIntoChunks(page.Content, config.ChunkSize, config.ChunkOverlap)

		for i, text := range stringChunks {
			chunkKey := fmt.Sprintf("%s/p%d/c%d", doc.Name, page.Number, i)
			allChunks = append(allChunks, commonModels.DocChunk{
				Doc:            doc,
				ChunkId:        utils.GetDeterministicUUID(chunkKey),
				Chunk:          text,
				PageNum:        page.Number,
				ChunkPageOrder: i,
				EmbeddingModel: embeddingModel,
			})
		}
	}

	return allChunks
}

func BatchIngest(ctx context.Context, chunks []commonModels.DocChunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	log := getLogger().With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := 100
	isHugeDataSet := len(chunks) > 1000000 //only a huge library goes through the batch job API
	if isHugeDataSet {
		log.Debug("Is a huge dataset")
	}

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Chunk)
		}

		log.Debug("Starting embedding call", "batch length", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		err = vectorDatabase.UpsertBatch(ctx, config.RecipeCollectionName, currentBatch, vectors)
		if err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}

	return nil
}

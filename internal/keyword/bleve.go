package keyword

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/notegraph/internal/models"
)

const (
	defaultTitleBoost = 3.0
	defaultTagBoost   = 2.0
)

// BleveIndex implements NoteIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
}

func noteMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	text := bleve.NewTextFieldMapping()
	// standard analyzer: lowercase + tokenize, no stemming, so "bst" matches "BST" exactly
	text.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", text)
	docMapping.AddFieldMappingsAt("content", text)
	docMapping.AddFieldMappingsAt("tags", text)

	exact := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("user_id", exact)
	docMapping.AddFieldMappingsAt("folder", exact)

	im.AddDocumentMapping("note", docMapping)
	im.DefaultType = "note"
	im.DefaultMapping = docMapping
	return im
}

// NewBleveIndex creates or opens a Bleve index at path. An empty path
// builds an in-memory index. Remove the directory after changing the
// mapping to force a rebuild.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if path == "" {
		index, err := bleve.NewMemOnly(noteMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create Bleve index: %w", err)
		}
		return &BleveIndex{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, noteMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index adds or replaces a note.
func (b *BleveIndex) Index(_ context.Context, note *models.Note) error {
	return b.index.Index(note.ID, map[string]interface{}{
		"user_id": note.UserID,
		"title":   note.Title,
		"content": note.Content,
		"tags":    strings.Join(note.Tags, " "),
		"folder":  note.Folder,
	})
}

// Delete removes a note from the index.
func (b *BleveIndex) Delete(_ context.Context, id string) error {
	return b.index.Delete(id)
}

// Search returns up to limit of userID's notes ranked by relevance. Title
// and tag matches are boosted over content matches.
func (b *BleveIndex) Search(ctx context.Context, userID, query string, limit int, opts *SearchOptions) ([]*Result, error) {
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return []*Result{}, nil
	}
	titleBoost := defaultTitleBoost
	tagBoost := defaultTagBoost
	fuzziness := 0
	if opts != nil {
		if opts.TitleBoost > 0 {
			titleBoost = opts.TitleBoost
		}
		if opts.TagBoost > 0 {
			tagBoost = opts.TagBoost
		}
		if opts.Fuzziness > 0 {
			fuzziness = opts.Fuzziness
		}
		if fuzziness > 2 {
			fuzziness = 2
		}
	}

	text := bleve.NewDisjunctionQuery(
		fieldQuery(query, "title", titleBoost, fuzziness),
		fieldQuery(query, "content", 1.0, fuzziness),
		fieldQuery(query, "tags", tagBoost, fuzziness),
	)
	owner := bleve.NewTermQuery(userID)
	owner.SetField("user_id")

	req := bleve.NewSearchRequest(bleve.NewConjunctionQuery(owner, text))
	req.Size = limit
	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*Result, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &Result{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

func fieldQuery(query, field string, boost float64, fuzziness int) blevequery.Query {
	mq := bleve.NewMatchQuery(query)
	mq.SetField(field)
	mq.SetBoost(boost)
	if fuzziness > 0 {
		mq.SetFuzziness(fuzziness)
	}
	return mq
}

// DocCount returns the total number of notes in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

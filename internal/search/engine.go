package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/keyword"
	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// ErrRankedUnavailable is returned for ranked queries when no keyword index is configured.
var ErrRankedUnavailable = errors.New("ranked search is not enabled")

// Engine runs linear or ranked note search for one user's note set.
type Engine struct {
	index  keyword.NoteIndex
	opts   *keyword.SearchOptions
	limit  int
	logger *zap.Logger
}

// NewEngine creates an engine. index may be nil, in which case only linear search is available.
func NewEngine(index keyword.NoteIndex, limit int, logger *zap.Logger) *Engine {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}
	return &Engine{
		index:  index,
		opts:   &keyword.SearchOptions{Fuzziness: 1},
		limit:  limit,
		logger: utils.OrNop(logger),
	}
}

// RankedEnabled reports whether ranked mode can be served.
func (e *Engine) RankedEnabled() bool {
	return e.index != nil
}

// Search runs query over notes, which must be the caller's full note set in session order.
func (e *Engine) Search(ctx context.Context, userID string, query *models.SearchQuery, notes []*models.Note) (*models.SearchResponse, error) {
	if err := query.Validate(e.limit); err != nil {
		return nil, err
	}

	var hits []*models.SearchResult
	switch query.Mode {
	case models.SearchModeRanked:
		if e.index == nil {
			return nil, ErrRankedUnavailable
		}
		ranked, err := e.ranked(ctx, userID, query, notes)
		if err != nil {
			return nil, err
		}
		hits = ranked
	default:
		for _, n := range Linear(query.Query, notes, query.Limit) {
			hits = append(hits, result(n, 0))
		}
	}
	if hits == nil {
		hits = []*models.SearchResult{}
	}
	return &models.SearchResponse{
		Query:   query.Query,
		Mode:    query.Mode,
		Results: hits,
		Total:   len(hits),
	}, nil
}

func (e *Engine) ranked(ctx context.Context, userID string, query *models.SearchQuery, notes []*models.Note) ([]*models.SearchResult, error) {
	if query.Blank() {
		return nil, nil
	}
	found, err := e.index.Search(ctx, userID, query.Query, query.Limit, e.opts)
	if err != nil {
		e.logger.Warn("ranked search failed", zap.String("query", query.Query), zap.Error(err))
		return nil, fmt.Errorf("ranked search failed: %w", err)
	}
	byID := make(map[string]*models.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}
	out := make([]*models.SearchResult, 0, len(found))
	for _, r := range found {
		n, ok := byID[r.ID]
		if !ok {
			// index ahead of or behind the session; skip stale ids
			continue
		}
		out = append(out, result(n, r.Score))
	}
	return out, nil
}

func result(n *models.Note, score float64) *models.SearchResult {
	return &models.SearchResult{
		Note:    n,
		Snippet: Snippet(n.Content),
		Tags:    PreviewTags(n.Tags),
		Score:   score,
	}
}

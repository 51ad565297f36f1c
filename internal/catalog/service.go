package catalog

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

// SortKey selects the list order. Unknown values fall back to SortIDAsc.
type SortKey string

const (
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
	SortIDAsc    SortKey = "id-asc"
	SortIDDesc   SortKey = "id-desc"
)

func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNameAsc, SortNameDesc, SortIDAsc, SortIDDesc:
		return k
	default:
		return SortIDAsc
	}
}

// orderBy ties name sorts on id in the same direction, so name-desc is
// always the exact reverse of name-asc.
func (k SortKey) orderBy() string {
	switch k {
	case SortNameAsc:
		return "name ASC, id ASC"
	case SortNameDesc:
		return "name DESC, id DESC"
	case SortIDDesc:
		return "id DESC"
	default:
		return "id ASC"
	}
}

// Store is the persistence the query engine reads from.
type Store interface {
	GetByID(ctx context.Context, id int) (*models.CatalogRecord, error)
	List(ctx context.Context, q ListQuery) ([]models.CatalogRecordSummary, error)
	ListAll(ctx context.Context) ([]models.CatalogRecordSummary, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListParams carries the optional page bounds of a list call; a nil
// Limit returns everything after Offset.
type ListParams struct {
	Sort   string
	Limit  *int
	Offset *int
}

func (s *Service) List(ctx context.Context, p ListParams) ([]models.CatalogRecordSummary, error) {
	q := ListQuery{Sort: ParseSortKey(p.Sort), Limit: -1}
	if p.Limit != nil {
		if *p.Limit < 0 {
			return nil, pkgerrors.NewValidationError("limit", *p.Limit, "must be >= 0")
		}
		q.Limit = *p.Limit
	}
	if p.Offset != nil {
		if *p.Offset < 0 {
			return nil, pkgerrors.NewValidationError("offset", *p.Offset, "must be >= 0")
		}
		q.Offset = *p.Offset
	}
	return s.store.List(ctx, q)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*models.CatalogRecord, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, pkgerrors.NewNotFoundError("record", id)
	}
	return rec, nil
}

// Search returns the records whose name or any category contains query,
// compared case-insensitively, in ascending id order. It scans the whole
// catalog on every call; there is no index.
func (s *Service) Search(ctx context.Context, query string, limit *int) ([]models.CatalogRecordSummary, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, pkgerrors.NewValidationError("query", query, "must not be empty")
	}
	if limit != nil && *limit < 0 {
		return nil, pkgerrors.NewValidationError("limit", *limit, "must be >= 0")
	}

	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	m := newMatcher(term)
	out := make([]models.CatalogRecordSummary, 0)
	for _, rec := range all {
		if limit != nil && len(out) >= *limit {
			break
		}
		if m.matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// matcher holds a folded search term. A cases.Caser is stateful, so each
// search builds its own.
type matcher struct {
	fold cases.Caser
	term string
}

func newMatcher(term string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.term = m.fold.String(term)
	return m
}

func (m *matcher) matches(rec models.CatalogRecordSummary) bool {
	if strings.Contains(m.fold.String(rec.Name), m.term) {
		return true
	}
	for _, c := range rec.Categories {
		if strings.Contains(m.fold.String(c.Category), m.term) {
			return true
		}
	}
	return false
}

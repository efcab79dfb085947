package services

import (
	"context"
	"fmt"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driven"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driving"
	"github.com/tahnau/immich-smart-albums/internal/logger"
)

// Ensure SelectionService implements the interface.
var _ driving.SelectionService = (*SelectionService)(nil)

// SelectionService runs the selection pipeline: execute every remote
// query, combine the resulting ID sets, narrow with local filters and
// subtract the excludes.
type SelectionService struct {
	searcher driven.AssetSearcher
	filters  *FilterService
}

// NewSelectionService creates a new selection service.
func NewSelectionService(searcher driven.AssetSearcher, filters *FilterService) *SelectionService {
	return &SelectionService{
		searcher: searcher,
		filters:  filters,
	}
}

// selectionRun accumulates per-request state: every asset any query
// returned and the per-query reports. On an id collision the latest
// payload wins; the first-seen position is kept for ordering.
type selectionRun struct {
	observed map[string]domain.Asset
	order    []string
	reports  []domain.QueryReport
	stats    []domain.FilterStat
}

func (r *selectionRun) observe(a domain.Asset) {
	if _, seen := r.observed[a.ID]; !seen {
		r.order = append(r.order, a.ID)
	}
	r.observed[a.ID] = a
}

func (r *selectionRun) allObserved() domain.IDSet {
	ids := domain.NewIDSet()
	for id := range r.observed {
		ids.Add(id)
	}
	return ids
}

// assets returns the observed assets for the given IDs, in the order
// they were first seen.
func (r *selectionRun) assets(ids domain.IDSet) []domain.Asset {
	out := make([]domain.Asset, 0, ids.Len())
	for _, id := range r.order {
		if ids.Has(id) {
			out = append(out, r.observed[id])
		}
	}
	return out
}

// Select runs every criterion in the request and returns the selected
// asset IDs in sorted order. A request with no directives at all is an
// error; a selection that comes out empty is not.
func (s *SelectionService) Select(
	ctx context.Context, req domain.SelectionRequest,
) (*domain.SelectionResult, error) {
	if req.Empty() {
		return nil, domain.ErrNoCriteria
	}

	logger.Section("Selection Pipeline")

	run := &selectionRun{observed: make(map[string]domain.Asset)}

	// Phase 1: run every remote query, include and exclude alike, and
	// build the combination trees over their ID sets.
	includeNode := s.gather(ctx, req.Include, domain.RoleInclude, run)
	excludeNode := s.gather(ctx, req.Exclude, domain.RoleExclude, run)
	logger.Info("Observed %d distinct assets across all searches", len(run.observed))

	// Phase 2: resolve the trees. With no include queries at all the
	// selection starts from everything the run observed.
	combiner := NewCombiner()

	include, err := combiner.Resolve(includeNode)
	if err != nil {
		return nil, fmt.Errorf("combine includes: %w", err)
	}
	if includeNode == nil {
		include = run.allObserved()
		logger.Info("No include searches given, starting from all %d observed assets", include.Len())
	} else {
		logger.Info("Include searches selected %d assets", include.Len())
	}

	exclude, err := combiner.Resolve(excludeNode)
	if err != nil {
		return nil, fmt.Errorf("combine excludes: %w", err)
	}
	if excludeNode != nil {
		logger.Info("Exclude searches selected %d assets", exclude.Len())
	}

	// Phase 3: local include filters narrow the pool. They never
	// re-admit assets the searches did not select.
	include = s.narrowByFilters(include, req.Include.Filters, run)

	// Phase 4: local exclude filters mark assets for removal out of
	// what is still standing.
	exclude = s.excludeByFilters(include, exclude, req.Exclude.Filters, run)

	final := include.Minus(exclude)

	// Phase 5: cap and assemble.
	ids := final.Values()
	capped := false
	if req.MaxAssets > 0 && len(ids) > req.MaxAssets {
		logger.Info("Limiting selection to %d assets (from %d)", req.MaxAssets, len(ids))
		ids = ids[:req.MaxAssets]
		capped = true
	}

	result := &domain.SelectionResult{
		IDs:         ids,
		Observed:    len(run.observed),
		Included:    include.Len(),
		Excluded:    include.Len() - final.Len(),
		Capped:      capped,
		Reports:     run.reports,
		FilterStats: run.stats,
	}

	logger.Info("Final selection: %d assets (included %d, excluded %d)",
		len(result.IDs), result.Included, result.Excluded)
	return result, nil
}

// gather runs all queries of one role and returns the combination tree
// over their result sets, or nil when the role has no queries.
// Includes intersect across categories: an asset must satisfy every
// category the user gave criteria for. Excludes union: matching any
// exclude is enough to be removed.
func (s *SelectionService) gather(
	ctx context.Context, crit domain.Criteria, role domain.Role, run *selectionRun,
) *domain.SetNode {
	categories := crit.ByCategory()
	if len(categories) == 0 {
		return nil
	}

	nodes := make([]*domain.SetNode, 0, len(categories))
	for _, cq := range categories {
		nodes = append(nodes, s.gatherCategory(ctx, cq, role, run))
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	if role == domain.RoleInclude {
		return domain.NewBranch(domain.SetIntersection, nodes...)
	}
	return domain.NewBranch(domain.SetUnion, nodes...)
}

// gatherCategory runs one category's union and intersection groups.
// When both groups are present an include asset must satisfy both,
// while an exclude asset may satisfy either.
func (s *SelectionService) gatherCategory(
	ctx context.Context, cq domain.CategoryQueries, role domain.Role, run *selectionRun,
) *domain.SetNode {
	var nodes []*domain.SetNode
	if len(cq.Groups.Union) > 0 {
		nodes = append(nodes, s.runGroup(ctx, cq.Groups.Union, domain.SetUnion, role, run))
	}
	if len(cq.Groups.Intersection) > 0 {
		nodes = append(nodes, s.runGroup(ctx, cq.Groups.Intersection, domain.SetIntersection, role, run))
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	if role == domain.RoleInclude {
		return domain.NewBranch(domain.SetIntersection, nodes...)
	}
	return domain.NewBranch(domain.SetUnion, nodes...)
}

// runGroup executes each query in the group and collects the results
// into a leaf node keyed by query label.
func (s *SelectionService) runGroup(
	ctx context.Context, queries []domain.Query, mode domain.SetMode,
	role domain.Role, run *selectionRun,
) *domain.SetNode {
	leaves := make(map[string]domain.IDSet, len(queries))
	for i, q := range queries {
		assets, report := s.searcher.Search(ctx, q)
		report.Role = role
		report.Group = mode
		run.reports = append(run.reports, report)

		ids := domain.NewIDSet()
		for _, a := range assets {
			ids.Add(a.ID)
			run.observe(a)
		}

		key := report.Label
		if key == "" {
			key = fmt.Sprintf("%s-%d", q.Category, i+1)
		}
		if _, dup := leaves[key]; dup {
			key = fmt.Sprintf("%s#%d", key, i+1)
		}
		leaves[key] = ids

		if report.Partial {
			logger.Warn("Search %q degraded to partial results (%d assets kept): %s",
				key, ids.Len(), report.Failure)
		}
		logger.Info("%s %s search %q returned %d assets", role, q.Category, key, ids.Len())
	}
	return domain.NewLeaf(mode, leaves)
}

// narrowByFilters applies local include filters against the current
// pool. Groups whose rules all failed to compile are skipped; a dropped
// rule behaves as if it was never written.
func (s *SelectionService) narrowByFilters(
	include domain.IDSet, filters domain.RuleGroups, run *selectionRun,
) domain.IDSet {
	if filters.Empty() {
		return include
	}

	logger.Section("Include Filters")
	if rules := s.filters.Compile(filters.Union); len(rules) > 0 {
		passed, stats := s.filters.Apply(run.assets(include), rules, false, domain.RoleInclude)
		run.stats = append(run.stats, stats...)
		include = passed
	}
	if rules := s.filters.Compile(filters.Intersection); len(rules) > 0 {
		passed, stats := s.filters.Apply(run.assets(include), rules, true, domain.RoleInclude)
		run.stats = append(run.stats, stats...)
		include = passed
	}
	logger.Info("After include filters: %d assets", include.Len())
	return include
}

// excludeByFilters evaluates local exclude filters over the assets
// still standing and folds the matches into the exclude set.
func (s *SelectionService) excludeByFilters(
	include, exclude domain.IDSet, filters domain.RuleGroups, run *selectionRun,
) domain.IDSet {
	if filters.Empty() {
		return exclude
	}

	logger.Section("Exclude Filters")
	pool := run.assets(include.Minus(exclude))
	if rules := s.filters.Compile(filters.Union); len(rules) > 0 {
		matched, stats := s.filters.Apply(pool, rules, false, domain.RoleExclude)
		run.stats = append(run.stats, stats...)
		exclude = exclude.Union(matched)
	}
	if rules := s.filters.Compile(filters.Intersection); len(rules) > 0 {
		matched, stats := s.filters.Apply(pool, rules, true, domain.RoleExclude)
		run.stats = append(run.stats, stats...)
		exclude = exclude.Union(matched)
	}
	return exclude
}

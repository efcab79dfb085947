package domain

// Role says how a criterion participates in the final selection.
type Role int

// Roles.
const (
	// RoleInclude admits matching assets into the selection.
	RoleInclude Role = iota

	// RoleExclude removes matching assets from the selection.
	RoleExclude
)

func (r Role) String() string {
	if r == RoleExclude {
		return "exclude"
	}
	return "include"
}

// QueryGroups partitions one category's queries by combine mode:
// union-group results merge by set union, intersection-group results by
// set intersection.
type QueryGroups struct {
	Union        []Query
	Intersection []Query
}

// Empty reports whether the groups carry no queries at all.
func (g QueryGroups) Empty() bool {
	return len(g.Union) == 0 && len(g.Intersection) == 0
}

// RuleGroups partitions local filter rules by combine mode. Union-group
// rules match under ANY-rule semantics, intersection-group rules under
// ALL-rules semantics.
type RuleGroups struct {
	Union        []FilterRule
	Intersection []FilterRule
}

// Empty reports whether the groups carry no rules at all.
func (g RuleGroups) Empty() bool {
	return len(g.Union) == 0 && len(g.Intersection) == 0
}

// CategoryQueries pairs a category with its query groups for ordered
// pipeline iteration.
type CategoryQueries struct {
	Category Category
	Groups   QueryGroups
}

// Criteria holds every directive for one role (include or exclude):
// remote queries per category plus local filter rules.
type Criteria struct {
	Metadata QueryGroups
	Smart    QueryGroups
	Person   QueryGroups
	Filters  RuleGroups
}

// ByCategory returns the non-empty query groups in canonical order
// (metadata, smart, person).
func (c Criteria) ByCategory() []CategoryQueries {
	all := []CategoryQueries{
		{CategoryMetadata, c.Metadata},
		{CategorySmart, c.Smart},
		{CategoryPerson, c.Person},
	}
	out := make([]CategoryQueries, 0, len(all))
	for _, cq := range all {
		if !cq.Groups.Empty() {
			out = append(out, cq)
		}
	}
	return out
}

// HasQueries reports whether any remote query exists in any category.
func (c Criteria) HasQueries() bool {
	return len(c.ByCategory()) > 0
}

// Empty reports whether the criteria carry no queries and no filters.
func (c Criteria) Empty() bool {
	return !c.HasQueries() && c.Filters.Empty()
}

// SelectionRequest is one full pipeline invocation. No state survives
// between requests.
//
// MaxAssets, when positive, truncates the final selection to an arbitrary
// subset of that size; callers must not assume which members are kept.
type SelectionRequest struct {
	Include   Criteria
	Exclude   Criteria
	MaxAssets int
}

// Empty reports whether the request carries no directives at all.
func (r SelectionRequest) Empty() bool {
	return r.Include.Empty() && r.Exclude.Empty()
}

// QueryReport records how one query's pagination went. A Partial report
// means a page fetch failed mid-run and the query contributed only what
// it had accumulated by then.
type QueryReport struct {
	Label    string
	Category Category
	Role     Role
	Group    SetMode
	Pages    int
	Fetched  int
	Partial  bool
	Failure  string
}

// FilterStat records how many assets matched one rule during a run.
type FilterStat struct {
	Label   string
	Role    Role
	Group   SetMode
	Matched int
}

// SelectionResult is the outcome of a pipeline run: the final identifier
// set in sorted order plus the per-stage accounting that makes the run
// observable.
type SelectionResult struct {
	IDs         []string
	Observed    int
	Included    int
	Excluded    int
	Capped      bool
	Reports     []QueryReport
	FilterStats []FilterStat
}

// Empty reports whether the selection came out empty. Callers treat this
// as a normal terminal state, not an error.
func (r *SelectionResult) Empty() bool {
	return len(r.IDs) == 0
}

// Partial reports whether any query degraded to partial results.
func (r *SelectionResult) Partial() bool {
	for _, rep := range r.Reports {
		if rep.Partial {
			return true
		}
	}
	return false
}

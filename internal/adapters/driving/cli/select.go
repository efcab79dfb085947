package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
	"github.com/tahnau/immich-smart-albums/internal/logger"
)

// Select flags. Every query and filter flag repeats; union groups merge
// their results, intersection groups keep only assets every member
// returned.
var (
	includeSmartUnion        []string
	includeSmartIntersection []string
	excludeSmartUnion        []string
	excludeSmartIntersection []string

	includeMetadataUnion        []string
	includeMetadataIntersection []string
	excludeMetadataUnion        []string
	excludeMetadataIntersection []string

	includePersonUnion        []string
	includePersonIntersection []string
	excludePersonUnion        []string
	excludePersonIntersection []string

	includeFilterUnion        []string
	includeFilterIntersection []string
	excludeFilterUnion        []string
	excludeFilterIntersection []string

	selectAlbum      string
	selectMaxAssets  int
	selectSmartLimit int
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select assets with searches and filters",
	Long: `Runs the selection pipeline: executes every search, combines the
results with set algebra, narrows them with local JSONPath filters and
subtracts the excludes.

Metadata queries are JSON objects (inline or a .json file), smart
queries are free text with an optional @N result cap, person queries
are names or IDs, and local filters are JSONPath rules (a .json rule
file, an inline JSON array, or path:regex shorthand).

Include criteria from different categories intersect: an asset must
satisfy each category you gave criteria for. Matching any exclude
removes an asset. Within a category, union-group results merge and
intersection-group results must all agree.

Without --album the selection prints as photo URLs, one per line, on
stdout. With --album the assets are added to that album instead.`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

//nolint:funlen // flag registration is long but flat
func init() {
	f := selectCmd.Flags()

	f.StringArrayVar(&includeSmartUnion, "include-smart-union", nil,
		"smart query to include (union group)")
	f.StringArrayVar(&includeSmartIntersection, "include-smart-intersection", nil,
		"smart query to include (intersection group)")
	f.StringArrayVar(&excludeSmartUnion, "exclude-smart-union", nil,
		"smart query to exclude (union group)")
	f.StringArrayVar(&excludeSmartIntersection, "exclude-smart-intersection", nil,
		"smart query to exclude (intersection group)")

	f.StringArrayVar(&includeMetadataUnion, "include-metadata-union", nil,
		"metadata query to include (union group)")
	f.StringArrayVar(&includeMetadataIntersection, "include-metadata-intersection", nil,
		"metadata query to include (intersection group)")
	f.StringArrayVar(&excludeMetadataUnion, "exclude-metadata-union", nil,
		"metadata query to exclude (union group)")
	f.StringArrayVar(&excludeMetadataIntersection, "exclude-metadata-intersection", nil,
		"metadata query to exclude (intersection group)")

	f.StringArrayVar(&includePersonUnion, "include-person-union", nil,
		"person name or ID to include (union group)")
	f.StringArrayVar(&includePersonIntersection, "include-person-intersection", nil,
		"person name or ID to include (intersection group)")
	f.StringArrayVar(&excludePersonUnion, "exclude-person-union", nil,
		"person name or ID to exclude (union group)")
	f.StringArrayVar(&excludePersonIntersection, "exclude-person-intersection", nil,
		"person name or ID to exclude (intersection group)")

	f.StringArrayVar(&includeFilterUnion, "include-local-filter-union", nil,
		"JSONPath filter to include (union group)")
	f.StringArrayVar(&includeFilterIntersection, "include-local-filter-intersection", nil,
		"JSONPath filter to include (intersection group)")
	f.StringArrayVar(&excludeFilterUnion, "exclude-local-filter-union", nil,
		"JSONPath filter to exclude (union group)")
	f.StringArrayVar(&excludeFilterIntersection, "exclude-local-filter-intersection", nil,
		"JSONPath filter to exclude (intersection group)")

	f.StringVar(&selectAlbum, "album", "",
		"album name or ID to add the selection to (default: print URLs)")
	f.IntVar(&selectMaxAssets, "max-assets", 0,
		"cap on how many assets are kept")
	f.IntVar(&selectSmartLimit, "default-smart-result-limit", 0,
		"result cap for smart queries without an explicit limit")

	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, _ []string) error {
	if selectionService == nil || catalogService == nil {
		return errors.New("selection service not configured")
	}

	ctx := context.Background()

	req, err := buildSelectionRequest(ctx)
	if err != nil {
		return err
	}
	if req.Empty() {
		return fmt.Errorf("%w: pass at least one search or filter flag (see --help)",
			domain.ErrNoCriteria)
	}

	result, err := selectionService.Select(ctx, req)
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}

	if result.Empty() {
		cmd.PrintErrln("No assets matched the given criteria.")
		return nil
	}

	if selectAlbum != "" {
		return addSelectionToAlbum(ctx, cmd, selectAlbum, result.IDs)
	}

	for _, id := range result.IDs {
		cmd.Printf("%s/photos/%s\n", resolvedServer, id)
	}
	return nil
}

// buildSelectionRequest assembles the request from the select flags.
func buildSelectionRequest(ctx context.Context) (domain.SelectionRequest, error) {
	smartLimit := selectSmartLimit
	if smartLimit <= 0 {
		smartLimit = defaultSmartLimit()
	}

	include, err := buildCriteria(ctx, criteriaInput{
		smartUnion:           includeSmartUnion,
		smartIntersection:    includeSmartIntersection,
		metadataUnion:        includeMetadataUnion,
		metadataIntersection: includeMetadataIntersection,
		personUnion:          includePersonUnion,
		personIntersection:   includePersonIntersection,
		filterUnion:          includeFilterUnion,
		filterIntersection:   includeFilterIntersection,
	}, smartLimit)
	if err != nil {
		return domain.SelectionRequest{}, err
	}

	exclude, err := buildCriteria(ctx, criteriaInput{
		smartUnion:           excludeSmartUnion,
		smartIntersection:    excludeSmartIntersection,
		metadataUnion:        excludeMetadataUnion,
		metadataIntersection: excludeMetadataIntersection,
		personUnion:          excludePersonUnion,
		personIntersection:   excludePersonIntersection,
		filterUnion:          excludeFilterUnion,
		filterIntersection:   excludeFilterIntersection,
	}, smartLimit)
	if err != nil {
		return domain.SelectionRequest{}, err
	}

	return domain.SelectionRequest{
		Include:   include,
		Exclude:   exclude,
		MaxAssets: selectMaxAssets,
	}, nil
}

// defaultSmartLimit reads the configured smart result cap, falling back
// to the built-in default.
func defaultSmartLimit() int {
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err == nil && settings.SmartLimit > 0 {
			return settings.SmartLimit
		}
	}
	return domain.DefaultSmartLimit
}

// criteriaInput carries one role's raw flag values.
type criteriaInput struct {
	smartUnion           []string
	smartIntersection    []string
	metadataUnion        []string
	metadataIntersection []string
	personUnion          []string
	personIntersection   []string
	filterUnion          []string
	filterIntersection   []string
}

func buildCriteria(ctx context.Context, in criteriaInput, smartLimit int) (domain.Criteria, error) {
	smartUnion, err := parseQueries(domain.CategorySmart, in.smartUnion, smartLimit)
	if err != nil {
		return domain.Criteria{}, err
	}
	smartIntersection, err := parseQueries(domain.CategorySmart, in.smartIntersection, smartLimit)
	if err != nil {
		return domain.Criteria{}, err
	}

	metadataUnion, err := parseQueries(domain.CategoryMetadata, in.metadataUnion, 0)
	if err != nil {
		return domain.Criteria{}, err
	}
	metadataIntersection, err := parseQueries(domain.CategoryMetadata, in.metadataIntersection, 0)
	if err != nil {
		return domain.Criteria{}, err
	}

	personUnion, err := personQueries(ctx, in.personUnion)
	if err != nil {
		return domain.Criteria{}, err
	}
	personIntersection, err := personQueries(ctx, in.personIntersection)
	if err != nil {
		return domain.Criteria{}, err
	}

	filterUnion, err := parseFilterGroup(in.filterUnion)
	if err != nil {
		return domain.Criteria{}, err
	}
	filterIntersection, err := parseFilterGroup(in.filterIntersection)
	if err != nil {
		return domain.Criteria{}, err
	}

	return domain.Criteria{
		Metadata: domain.QueryGroups{Union: metadataUnion, Intersection: metadataIntersection},
		Smart:    domain.QueryGroups{Union: smartUnion, Intersection: smartIntersection},
		Person:   domain.QueryGroups{Union: personUnion, Intersection: personIntersection},
		Filters:  domain.RuleGroups{Union: filterUnion, Intersection: filterIntersection},
	}, nil
}

// personQueries resolves person identifiers and builds one query per
// resolved person, so a name carried by several people contributes each
// of them to the group.
func personQueries(ctx context.Context, identifiers []string) ([]domain.Query, error) {
	var queries []domain.Query
	for _, identifier := range identifiers {
		ids, err := catalogService.ResolvePersonIDs(ctx, []string{identifier})
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			queries = append(queries, domain.Query{
				Category: domain.CategoryPerson,
				Payload:  map[string]any{"personIds": []string{id}},
				Label:    identifier,
			})
		}
	}
	return queries, nil
}

// addSelectionToAlbum resolves the album and adds the selected assets.
func addSelectionToAlbum(ctx context.Context, cmd *cobra.Command, nameOrID string, ids []string) error {
	albumID, err := catalogService.ResolveAlbumID(ctx, nameOrID)
	if err != nil {
		return fmt.Errorf("resolve album: %w", err)
	}

	added, err := catalogService.AddToAlbum(ctx, albumID, ids)
	if err != nil {
		if added > 0 {
			logger.Warn("Added %d of %d assets before the failure", added, len(ids))
		}
		return err
	}

	cmd.Printf("Added %d of %d assets to album %s.\n", added, len(ids), nameOrID)
	return nil
}

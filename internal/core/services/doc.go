// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SelectionService runs the selection pipeline, FilterService and
// Combiner do its local filtering and set algebra, CatalogService
// resolves names against the server and SettingsService manages
// persisted configuration.
package services

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - AssetSearcher: Executes search queries against the Immich server
//   - CatalogAPI: Lists albums, people and users
//   - AlbumWriter: Adds assets to albums
//   - PathMatcher: Compiles JSONPath expressions for local filtering
//   - ConfigStore: Application configuration persistence
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven

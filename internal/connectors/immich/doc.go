// Package immich implements the connector for an Immich photo server.
//
// The connector speaks the server's REST API and backs every driven port
// that touches the network: asset search, the album/people/user catalog,
// album writes and the connectivity ping. One Client serves them all.
//
// # Authentication
//
// Every request carries an API key in the x-api-key header. Keys are
// created in the Immich web UI under Account Settings > API Keys. Some
// operations (listing all users) additionally require the key's owner to
// be an admin.
//
// # Search Pagination
//
// Search queries POST to /api/search/metadata or /api/search/smart with
// a fixed page size of 100 and withExif enabled, and follow nextPage
// until the server reports no further page. Pagination is deliberately
// forgiving: a failed page ends the query with the assets accumulated so
// far and a Partial flag on the report, rather than aborting the whole
// selection. A query's ResultLimit caps accumulation and stops paging
// early.
//
// # Rate Limiting
//
// All requests pass through a proactive token-bucket limiter (default
// 10 requests per second, burst 5). Immich exposes no quota headers, so
// there is no reactive component; the bucket exists to keep page-heavy
// selections from flooding a self-hosted instance.
//
// # Error Handling
//
// Non-2xx responses become an [*APIError] carrying the status code, the
// server's message and the request URL. The IsNotFound, IsUnauthorized,
// IsForbidden and IsRateLimited helpers classify them. Transport errors
// during search are absorbed into the query report; everywhere else they
// surface wrapped.
package immich

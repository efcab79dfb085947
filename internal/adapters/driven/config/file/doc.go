// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage under
//     ~/.immich-smart-albums/, holding the server URL, the API key and
//     search defaults with owner-only file permissions
package file

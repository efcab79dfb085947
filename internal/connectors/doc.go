// Package connectors holds clients for remote media servers. Each
// connector implements the driven ports that touch the network for one
// server type; immich is the only connector today.
package connectors

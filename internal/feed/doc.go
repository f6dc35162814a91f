// Package feed streams standings snapshots to WebSocket clients.
//
// The hub keeps one goroutine pair per client (writePump/readPump) with
// ping/pong keepalive; a client that stops draining its send buffer is
// disconnected rather than blocking the broadcast. The pipeline triggers
// broadcasts via Notify after each publish.
package feed

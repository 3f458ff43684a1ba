// Package ws streams kernel state snapshots over WebSocket.
//
// Each connection subscribes to the store: every applied transition pushes
// the resulting snapshot to the client. The client can also dispatch into
// the kernel over the same connection.
//
// Message Types (Client → Server):
//   - navigate: start a navigation ({"type":"navigate","url":...})
//   - dispatch: raw kernel action ({"type":"dispatch","action":{...}})
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - state: full BrowserState snapshot
//   - pong: keep-alive reply
//   - error: request could not be handled
//
// Example Usage:
//
//	handler := ws.NewHandler(store, ldr, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws

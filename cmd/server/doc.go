// Command server runs the browser kernel service: the state-machine core
// plus its REST and WebSocket surfaces.
package main

// Package server exposes the HTTP surface: the websocket endpoint plus a
// small REST listing for clients that want room state before connecting.
package server

import (
	"log/slog"

	"cardroom/internal/ws"
)

type Server struct {
	log *slog.Logger
	hub *ws.Hub
}

func New(log *slog.Logger, hub *ws.Hub) *Server {
	return &Server{log: log, hub: hub}
}

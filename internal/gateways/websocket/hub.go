package websocket

import (
	"backend/internal/app/message"

	"go.uber.org/zap"
)

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	logger     *zap.SugaredLogger

	feed       *message.Feed
	messageSvc message.Service
	jwtSecret  string
}

func NewHub(logger *zap.Logger, feed *message.Feed, messageSvc message.Service, jwtSecret string) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger.Sugar(),
		feed:       feed,
		messageSvc: messageSvc,
		jwtSecret:  jwtSecret,
	}
}

func (h *Hub) Run() {
	h.logger.Info("WebSocket Hub started")

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"user_id", client.UserID,
				"clients_count", len(h.clients),
			)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.session.Deactivate()
				h.logger.Infow("Client disconnected",
					"client_id", client.ID,
					"user_id", client.UserID,
					"clients_count", len(h.clients),
				)
			}
		}
	}
}

package handlers

import "github.com/cartloom/cartloom/internal/provider"

// Handler is the API handler entry point. It reads its services straight
// from the dependency container.
type Handler struct {
	*provider.Container
}

// New creates the API handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

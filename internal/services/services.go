package services

import (
	"github.com/sentinel/sentinel-backend/internal/stats"
)

// Services holds all service instances plus the process-wide precomputed
// state. Stats and the prompt inside Chat are built once at startup and
// never written afterwards, so handlers may read them concurrently.
type Services struct {
	Chat  *ChatService
	Stats *stats.Bundle
}

// NewServices creates all service instances
func NewServices(chat *ChatService, bundle *stats.Bundle) *Services {
	return &Services{
		Chat:  chat,
		Stats: bundle,
	}
}

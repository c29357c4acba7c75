package memory

import (
	"sync"
	"time"

	"github.com/mfinley/rostercoach/internal/advisor"
	"github.com/mfinley/rostercoach/internal/models"
)

// Repository caches the parsed league settings and metadata between provider
// refreshes so the engines are not gated on a settings fetch every run.
type Repository struct {
	mu       sync.RWMutex
	settings *advisor.LeagueSettings
	metadata *models.LeagueMetadata
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveSettings(settings *advisor.LeagueSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
}

func (r *Repository) GetSettings() *advisor.LeagueSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

// GetMetadata returns the cached metadata, or nil when absent or older than
// maxAge.
func (r *Repository) GetMetadata(maxAge time.Duration) *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.metadata == nil || time.Since(r.metadata.LastUpdated) > maxAge {
		return nil
	}
	return r.metadata
}

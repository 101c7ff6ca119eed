package memory

import (
	"sync"

	"github.com/omarshaarawi/rotocoach/internal/models"
)

// Repository holds the most recent report and league metadata.
type Repository struct {
	report   *models.Report
	metadata *models.LeagueMetadata
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveReport(report *models.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report = report
}

func (r *Repository) GetReport() *models.Report {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata = metadata
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata
}

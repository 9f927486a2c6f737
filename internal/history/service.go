package history

import (
	"context"
	"time"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/translation"
)

// Record is one localized audit entry as served to clients
type Record struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	UserName  string    `json:"userName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service reads the audit trail of an entity and localizes the stored
// message keys for display. Writes go through the BatchContext and the
// transactional commit, not through this service.
type Service struct {
	repo       domain.HistoryRepository
	translator *translation.Translator
}

// NewService creates a history read service
func NewService(repo domain.HistoryRepository, translator *translation.Translator) *Service {
	return &Service{repo: repo, translator: translator}
}

// ForEntity returns the localized history of one entity, newest first
func (s *Service) ForEntity(ctx context.Context, entityID, lang string) ([]Record, error) {
	entries, err := s.repo.FindByEntityID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		args := make([]any, len(e.Args))
		for i, a := range e.Args {
			args[i] = a
		}
		records = append(records, Record{
			ID:        e.ID,
			Message:   s.translator.Translate(lang, e.MessageKey, args...),
			UserName:  e.UserName,
			CreatedAt: e.CreatedAt,
		})
	}
	return records, nil
}

// ABOUTME: Repository interface for training-log data storage.
// ABOUTME: Defines the contract the engine's collaborators rely on.
package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/rollready/rollready/internal/models"
)

// Repository defines the storage interface for training-log data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Checkin operations. Upsert is idempotent per calendar day.
	UpsertCheckin(c *models.ReadinessCheckin) error
	GetCheckinByDate(date string) (*models.ReadinessCheckin, error)
	ListCheckins(limit int) ([]*models.ReadinessCheckin, error)
	DeleteCheckin(date string) error

	// Session operations
	CreateSession(s *models.TrainingSession) error
	GetSession(idOrPrefix string) (*models.TrainingSession, error)
	ListSessions(classType *string, limit int) ([]*models.TrainingSession, error)
	ListSessionsSince(date string) ([]*models.TrainingSession, error)
	LinkSessionWorkout(sessionID uuid.UUID, b models.SessionBiometrics) error
	DeleteSession(idOrPrefix string) error

	// Wearable data operations
	UpsertRecovery(r *models.WearableRecovery) error
	GetRecoveryByDate(date string) (*models.WearableRecovery, error)
	ListRecoveriesSince(date string) ([]*models.WearableRecovery, error)
	UpsertWearableWorkout(w *models.WearableWorkout) error
	GetWearableWorkout(idOrPrefix string) (*models.WearableWorkout, error)
	ListWorkoutsBetween(start, end time.Time) ([]*models.WearableWorkout, error)

	// Competition calendar
	CreateEvent(e *models.CompetitionEvent) error
	ListEvents(limit int) ([]*models.CompetitionEvent, error)
	NextEventAfter(date string) (*models.CompetitionEvent, error)
	DeleteEvent(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

package app

import (
	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	calendarPersistence "github.com/felixgeelhaar/tempo/internal/calendar/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	productivityPersistence "github.com/felixgeelhaar/tempo/internal/productivity/infrastructure/persistence"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	schedulingPersistence "github.com/felixgeelhaar/tempo/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	wellnessPersistence "github.com/felixgeelhaar/tempo/internal/wellness/infrastructure/persistence"
)

// Repositories groups every store over one connection. The same
// implementations serve SQLite and PostgreSQL; queries are rebound per
// driver at call time.
type Repositories struct {
	Tasks        task.Repository
	Observations wellness.ObservationRepository
	Sessions     wellness.StudySessionRepository
	Events       calendarDomain.RecurringEventRepository
	Sleep        schedulingDomain.SleepRepository
	Assignments  schedulingDomain.AssignmentRepository
	Outbox       outbox.Repository
}

// NewRepositories creates the repositories for conn.
func NewRepositories(conn database.Connection) *Repositories {
	return &Repositories{
		Tasks:        productivityPersistence.NewTaskRepository(conn),
		Observations: wellnessPersistence.NewObservationRepository(conn),
		Sessions:     wellnessPersistence.NewStudySessionRepository(conn),
		Events:       calendarPersistence.NewRecurringEventRepository(conn),
		Sleep:        schedulingPersistence.NewSleepRepository(conn),
		Assignments:  schedulingPersistence.NewAssignmentRepository(conn),
		Outbox:       outbox.NewStore(conn),
	}
}

package domain

import "context"

// ObservationRepository stores the energy log.
type ObservationRepository interface {
	Append(ctx context.Context, o Observation) error
	List(ctx context.Context) ([]Observation, error)
}

// StudySessionRepository stores study sessions.
type StudySessionRepository interface {
	Save(ctx context.Context, s *StudySession) error
	List(ctx context.Context) ([]*StudySession, error)
	TotalMinutes(ctx context.Context) (int, error)
}

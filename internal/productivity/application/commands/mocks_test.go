package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type txKey struct{}

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindBySubtaskID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindOpen(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, err, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fixture struct {
	ctx        context.Context
	txCtx      context.Context
	taskRepo   *mockTaskRepo
	outboxRepo *mockOutboxRepo
	uow        *mockUnitOfWork
}

func newFixture() *fixture {
	ctx := context.Background()
	return &fixture{
		ctx:        ctx,
		txCtx:      context.WithValue(ctx, txKey{}, "transaction"),
		taskRepo:   new(mockTaskRepo),
		outboxRepo: new(mockOutboxRepo),
		uow:        new(mockUnitOfWork),
	}
}

func (f *fixture) expectCommit() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("Commit", f.txCtx).Return(nil)
}

func (f *fixture) expectRollback() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("Rollback", f.txCtx).Return(nil)
}

// capturedMessages records every outbox batch.
func (f *fixture) capturedMessages() *[]*outbox.Message {
	var out []*outbox.Message
	f.outboxRepo.On("SaveBatch", f.txCtx, mock.AnythingOfType("[]*outbox.Message")).
		Run(func(args mock.Arguments) {
			out = append(out, args.Get(1).([]*outbox.Message)...)
		}).
		Return(nil)
	return &out
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.uow.AssertExpectations(t)
	f.taskRepo.AssertExpectations(t)
	f.outboxRepo.AssertExpectations(t)
}

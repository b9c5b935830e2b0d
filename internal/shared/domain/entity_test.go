package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBaseEntity_Lifecycle(t *testing.T) {
	start := time.Now().UTC()
	e := domain.NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, e.ID())
	assert.WithinDuration(t, start, e.CreatedAt(), time.Second)
	assert.Equal(t, time.UTC, e.CreatedAt().Location())
	assert.Equal(t, e.CreatedAt(), e.UpdatedAt())

	created := e.CreatedAt()
	time.Sleep(2 * time.Millisecond)
	e.Touch()
	assert.Equal(t, created, e.CreatedAt())
	assert.True(t, e.UpdatedAt().After(created))
}

func TestRehydrateBaseEntity(t *testing.T) {
	id := uuid.New()
	created := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	updated := created.Add(36 * time.Hour)

	e := domain.RehydrateBaseEntity(id, created, updated)

	assert.Equal(t, id, e.ID())
	assert.Equal(t, created, e.CreatedAt())
	assert.Equal(t, updated, e.UpdatedAt())
}

func TestBaseEntity_EqualsByIdentityOnly(t *testing.T) {
	id := uuid.New()
	fresh := domain.NewBaseEntityWithID(id)
	loaded := domain.RehydrateBaseEntity(id, time.Unix(0, 0), time.Unix(0, 0))
	other := domain.NewBaseEntity()

	assert.True(t, fresh.Equals(&loaded))
	assert.False(t, fresh.Equals(&other))
	assert.False(t, fresh.Equals(nil))
}

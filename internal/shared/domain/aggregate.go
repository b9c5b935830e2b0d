package domain

import "slices"

// AggregateRoot is an entity that records the events raised while it changes.
type AggregateRoot interface {
	Entity
	DomainEvents() []DomainEvent
	ClearDomainEvents()
	AddDomainEvent(event DomainEvent)
}

// BaseAggregateRoot keeps the events an aggregate raised since it was
// loaded or last saved. Command handlers copy them to the outbox in the
// same transaction as the aggregate.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

// NewBaseAggregateRoot starts a new aggregate with a fresh ID.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// RehydrateBaseAggregateRoot wraps an entity loaded from storage. It has no
// pending events.
func RehydrateBaseAggregateRoot(entity BaseEntity) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity}
}

// DomainEvents returns a copy of the pending events, oldest first.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return slices.Clone(a.pending)
}

// ClearDomainEvents forgets the pending events.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}

// AddDomainEvent appends to the pending events.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

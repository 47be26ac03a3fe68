package shared

// Lifecycle represents the coarse lifecycle state every planning entity
// carries. A record is never hard-deleted: ending or deleting it moves it
// through these states so historical occurrences stay queryable.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "ACTIVE"
	LifecycleEnded   Lifecycle = "ENDED"
	LifecycleDeleted Lifecycle = "DELETED"
)

// IsValid checks if the state is a valid Lifecycle
func (l Lifecycle) IsValid() bool {
	switch l {
	case LifecycleActive, LifecycleEnded, LifecycleDeleted:
		return true
	}
	return false
}

// String returns the string representation of Lifecycle
func (l Lifecycle) String() string {
	return string(l)
}

// IsActive returns true if the record is still in play
func (l Lifecycle) IsActive() bool {
	return l == LifecycleActive
}

// IsDeleted returns true if the record has been soft-deleted
func (l Lifecycle) IsDeleted() bool {
	return l == LifecycleDeleted
}

package model

// HasDisplayName is implemented by entities with a human readable label.
type HasDisplayName interface {
	DisplayName() string
}

// HasPath is implemented by entities reachable under a site path.
type HasPath interface {
	Path() string
}

package types

// Status is a type for the lifecycle status of a persisted record.
// It determines whether the record is included in queries, independent of
// any domain-level status (subscription status, invoice status and so on).
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

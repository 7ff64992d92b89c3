package domain

import "time"

// ArchiveTrigger records what started an archiving pass.
type ArchiveTrigger string

const (
	TriggerSchedule ArchiveTrigger = "schedule"
	TriggerManual   ArchiveTrigger = "manual"
)

// ArchiveRun is the audit record of one archiving pass.
type ArchiveRun struct {
	ID              string
	Trigger         ArchiveTrigger
	StartedAt       time.Time
	FinishedAt      *time.Time
	ArchivedInvites int
	PurgedResets    int
	Error           string
}

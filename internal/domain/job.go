package domain

import "time"

// JobType enumerates the shape of a mining job's input.
type JobType string

const (
	JobTypeURL  JobType = "url"
	JobTypeFile JobType = "file"
	JobTypeText JobType = "text"
)

// JobStatus is the job's lifecycle state. Terminal states (Completed,
// Failed) are final — a job never transitions out of them.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// MinerFlags selects which miners are eligible to run for a job. Zero value
// means "let the Engine pick eligible miners for the job type".
type MinerFlags struct {
	Structured   bool
	Tabular      bool
	Unstructured bool
	DOMBlock     bool
	AIExtractor  bool
}

// Job carries everything the Engine needs to run one mining pipeline.
type Job struct {
	ID          string     `json:"id" db:"id"`
	TenantID    string     `json:"tenant_id" db:"tenant_id"`
	Type        JobType    `json:"type" db:"type"`
	Input       string     `json:"input" db:"input"` // URL, file path/bytes ref, or raw text
	Flags       MinerFlags `json:"flags" db:"-"`
	Status      JobStatus  `json:"status" db:"status"`
	Error       string     `json:"error,omitempty" db:"error"`
	TotalFound  int        `json:"total_found" db:"total_found"`
	TotalValid  int        `json:"total_valid" db:"total_valid"`
	Stats       string     `json:"stats,omitempty" db:"stats"` // JSON blob of per-miner stats
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// IsTerminal reports whether the job has reached a final state.
func (j *Job) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// JobLogEntry is one append-only milestone in a job's execution log.
type JobLogEntry struct {
	ID        string    `json:"id" db:"id"`
	JobID     string    `json:"job_id" db:"job_id"`
	Milestone string    `json:"milestone" db:"milestone"` // miner_started | miner_finished | merged | persisted | ...
	Detail    string    `json:"detail,omitempty" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	MilestoneMinerStarted  = "miner_started"
	MilestoneMinerFinished = "miner_finished"
	MilestoneMerged        = "merged"
	MilestonePersisted     = "persisted"
)

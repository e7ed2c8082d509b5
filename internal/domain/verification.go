package domain

import "time"

// VerificationTaskStatus is the lifecycle state of one verification task.
type VerificationTaskStatus string

const (
	VerificationTaskPending    VerificationTaskStatus = "pending"
	VerificationTaskProcessing VerificationTaskStatus = "processing"
	VerificationTaskCompleted  VerificationTaskStatus = "completed"
	VerificationTaskFailed     VerificationTaskStatus = "failed"
	VerificationTaskCancelled  VerificationTaskStatus = "cancelled"
)

// VerificationTask is a durable, tenant-scoped unit of work for the
// Verification Queue. At most one task per (tenant_id, email) may be in
// {pending, processing} at a time.
type VerificationTask struct {
	ID          string                 `json:"id" db:"id"`
	TenantID    string                 `json:"tenant_id" db:"tenant_id"`
	Email       string                 `json:"email" db:"email"`
	PersonID    string                 `json:"person_id" db:"person_id"`
	Status      VerificationTaskStatus `json:"status" db:"status"`
	ProviderRaw string                 `json:"provider_raw,omitempty" db:"provider_raw"`
	Error       string                 `json:"error,omitempty" db:"error"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
	ClaimedAt   *time.Time             `json:"claimed_at,omitempty" db:"claimed_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty" db:"processed_at"`
}

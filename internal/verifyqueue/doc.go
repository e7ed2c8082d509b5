// Package verifyqueue implements the durable, tenant-scoped mailbox
// verification queue: enqueue is idempotent on (tenant, email), a single
// background worker claims batches under row-level locking and drives each
// task through a verification collaborator, updating the linked person's
// verification status.
//
// Grounded on the teacher's internal/worker/email_verifier.go poll loop and
// internal/worker/queue_recovery.go stuck-item reclaim logic.
package verifyqueue

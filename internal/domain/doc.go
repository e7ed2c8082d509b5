// Package domain holds the canonical entity types shared across the mining
// pipeline and the identity store: jobs, candidate contacts, persons,
// affiliations and verification tasks. Types here carry db/json struct tags
// but no persistence or business logic — that lives in internal/service and
// internal/repository.
package domain

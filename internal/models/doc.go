// Package models defines domain entities and persistence interfaces for the
// transfer client.
//
// The only persistent entity is [JobRun], a local audit record of one bulk
// job as it finished: which kind it was, the executor's job id, the terminal
// status, and the final counters. Live job state is never persisted — the
// executor owns it while a job runs; a JobRun is written once the job is
// over.
//
// Entities implement the Model interface providing ID generation, timestamps,
// validation, and soft delete support. The Repository[T] interface defines
// standard CRUD operations for database access.
package models

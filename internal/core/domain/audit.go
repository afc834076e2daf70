package domain

import "time"

// Auth event actions recorded in the audit trail.
const (
	AuditRegister = "register"
	AuditLogin    = "login"
	AuditRefresh  = "refresh"
)

// AuthEvent is a single entry in the authentication audit trail.
type AuthEvent struct {
	Email     string
	Action    string
	Success   bool
	Reason    string // failure reason, empty on success
	Timestamp time.Time
}

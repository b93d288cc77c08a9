package models

// Status is the lifecycle state of a remote user.
type Status string

const (
	StatusStaged          Status = "STAGED"
	StatusProvisioned     Status = "PROVISIONED"
	StatusActive          Status = "ACTIVE"
	StatusRecovery        Status = "RECOVERY"
	StatusPasswordExpired Status = "PASSWORD_EXPIRED"
	StatusLockedOut       Status = "LOCKED_OUT"
	StatusSuspended       Status = "SUSPENDED"
	StatusDeprovisioned   Status = "DEPROVISIONED"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusStaged, StatusProvisioned, StatusActive, StatusRecovery,
		StatusPasswordExpired, StatusLockedOut, StatusSuspended, StatusDeprovisioned:
		return true
	}
	return false
}

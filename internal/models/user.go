package models

import "time"

// User is the locally mirrored identity record. Timestamps are
// remote-authoritative: UpdatedAt is the tie-break for concurrent writes.
type User struct {
	ID        string
	Status    Status
	TypeID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the profile fields owned 1:1 by a User. The row is removed
// together with its User.
type Profile struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UserType is a shared reference describing many users. It is never owned by
// a single User.
type UserType struct {
	ID   string
	Name string
}

// UserRecord bundles the three rows that are written atomically per record.
type UserRecord struct {
	User    User
	Profile Profile
	Type    *UserType
}

package models

// RawUser is the wire shape of a user as returned by the Okta Users API.
// Validation tags describe the minimum a record must carry before it can be
// mapped into the local entity model; extra fields sent by the API are ignored
// by json.Unmarshal.
type RawUser struct {
	ID          string       `json:"id" validate:"required"`
	Status      string       `json:"status" validate:"required,oneof=STAGED PROVISIONED ACTIVE RECOVERY PASSWORD_EXPIRED LOCKED_OUT SUSPENDED DEPROVISIONED"`
	Created     string       `json:"created"`
	LastUpdated string       `json:"lastUpdated" validate:"required"`
	Type        *RawUserType `json:"type"`
	Profile     RawProfile   `json:"profile"`
}

// RawUserType is the user type reference embedded in a RawUser.
type RawUserType struct {
	ID          string `json:"id" validate:"required"`
	DisplayName string `json:"displayName"`
}

// RawProfile is the profile block of a RawUser.
type RawProfile struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	MobilePhone string `json:"mobilePhone"`
}

// Package mapper turns raw remote user records into the local entity model.
// Mapping is a pure function: a malformed record yields a *ValidationError
// and never affects the rest of its page.
package mapper

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/models"
)

var validate = newValidator()

// newValidator configures a validator that reports field paths by their JSON
// names, so reasons read like the wire format ("profile.email" rather than
// "Profile.Email").
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError describes why a raw record was rejected. It matches
// common.ErrValidation under errors.Is.
type ValidationError struct {
	RecordID string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("invalid record: %s", e.Reason)
	}
	return fmt.Sprintf("invalid record %s: %s", e.RecordID, e.Reason)
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// Map validates raw and converts it into a UserRecord. It has no side
// effects; timestamps are parsed into UTC.
func Map(raw models.RawUser) (*models.UserRecord, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, &ValidationError{RecordID: raw.ID, Reason: reason(err)}
	}

	updatedAt, err := parseTime(raw.LastUpdated)
	if err != nil {
		return nil, &ValidationError{RecordID: raw.ID, Reason: "lastUpdated: not a valid timestamp"}
	}

	createdAt := updatedAt
	if raw.Created != "" {
		createdAt, err = parseTime(raw.Created)
		if err != nil {
			return nil, &ValidationError{RecordID: raw.ID, Reason: "created: not a valid timestamp"}
		}
	}

	rec := &models.UserRecord{
		User: models.User{
			ID:        raw.ID,
			Status:    models.Status(raw.Status),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		Profile: models.Profile{
			UserID:    raw.ID,
			FirstName: raw.Profile.FirstName,
			LastName:  raw.Profile.LastName,
			Email:     raw.Profile.Email,
			Phone:     raw.Profile.MobilePhone,
		},
	}

	if raw.Type != nil {
		rec.User.TypeID = raw.Type.ID
		rec.Type = &models.UserType{ID: raw.Type.ID, Name: raw.Type.DisplayName}
	}

	return rec, nil
}

// reason renders the first validation failure as "field.path: message".
func reason(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	path := strings.TrimPrefix(fe.Namespace(), "RawUser.")

	switch fe.Tag() {
	case "required":
		return path + ": is required"
	case "email":
		return path + ": must be a valid email"
	case "oneof":
		return path + ": must be one of " + fe.Param()
	default:
		return fmt.Sprintf("%s: failed %q validation", path, fe.Tag())
	}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

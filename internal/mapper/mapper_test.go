package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/models"
)

func validRaw() models.RawUser {
	return models.RawUser{
		ID:          "u1",
		Status:      "ACTIVE",
		Created:     "2024-01-01T00:00:00.000Z",
		LastUpdated: "2024-06-01T12:30:00.000Z",
		Type:        &models.RawUserType{ID: "oty1", DisplayName: "Standard"},
		Profile: models.RawProfile{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			MobilePhone: "+15551234567",
		},
	}
}

func TestMap_ValidRecord(t *testing.T) {
	rec, err := Map(validRaw())
	require.NoError(t, err)

	require.Equal(t, "u1", rec.User.ID)
	require.Equal(t, models.StatusActive, rec.User.Status)
	require.Equal(t, "oty1", rec.User.TypeID)
	require.Equal(t, time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), rec.User.UpdatedAt)

	require.Equal(t, "u1", rec.Profile.UserID)
	require.Equal(t, "ada@example.com", rec.Profile.Email)
	require.Equal(t, "+15551234567", rec.Profile.Phone)

	require.NotNil(t, rec.Type)
	require.Equal(t, "Standard", rec.Type.Name)
}

func TestMap_TypeIsOptional(t *testing.T) {
	raw := validRaw()
	raw.Type = nil

	rec, err := Map(raw)
	require.NoError(t, err)
	require.Nil(t, rec.Type)
	require.Empty(t, rec.User.TypeID)
}

func TestMap_InvalidEmail(t *testing.T) {
	raw := validRaw()
	raw.Profile.Email = "not-an-email"

	_, err := Map(raw)
	require.ErrorIs(t, err, common.ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "u1", verr.RecordID)
	require.Contains(t, verr.Reason, "profile.email")
}

func TestMap_MissingID(t *testing.T) {
	raw := validRaw()
	raw.ID = ""

	_, err := Map(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Reason, "id: is required")
}

func TestMap_UnknownStatus(t *testing.T) {
	raw := validRaw()
	raw.Status = "HIBERNATING"

	_, err := Map(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Reason, "status")
}

func TestMap_BadTimestamp(t *testing.T) {
	raw := validRaw()
	raw.LastUpdated = "yesterday"

	_, err := Map(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Reason, "lastUpdated")
}

func TestMap_CreatedDefaultsToLastUpdated(t *testing.T) {
	raw := validRaw()
	raw.Created = ""

	rec, err := Map(raw)
	require.NoError(t, err)
	require.Equal(t, rec.User.UpdatedAt, rec.User.CreatedAt)
}

func TestMap_IsSideEffectFree(t *testing.T) {
	raw := validRaw()
	before := raw

	_, err := Map(raw)
	require.NoError(t, err)
	require.Equal(t, before, raw)
}

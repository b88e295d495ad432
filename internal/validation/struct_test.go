package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

func validSubmission() domain.ActivitySubmission {
	return domain.ActivitySubmission{
		ActivityType: domain.ActivityTreePlanting,
		Scale:        2,
		Location:     domain.LocationRural,
		UserWallet:   "0x52908400098527886E0F7030069857D2E4169EE7",
	}
}

func TestStruct_ValidSubmission(t *testing.T) {
	assert.NoError(t, Struct(validSubmission()))
}

func TestStruct_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ActivitySubmission)
		field  string
	}{
		{"unknown activity", func(s *domain.ActivitySubmission) { s.ActivityType = "knitting" }, "activitytype"},
		{"missing activity", func(s *domain.ActivitySubmission) { s.ActivityType = "" }, "activitytype"},
		{"negative scale", func(s *domain.ActivitySubmission) { s.Scale = -1 }, "scale"},
		{"missing wallet", func(s *domain.ActivitySubmission) { s.UserWallet = "" }, "userwallet"},
		{"bad history quality", func(s *domain.ActivitySubmission) {
			s.UserHistory = []domain.HistoryEntry{{QualityScore: 120}}
		}, "qualityscore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			err := Struct(sub)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Equal(t, map[string]string{"error": ErrMsgInvalidRequestShape}, FieldErrors(errors.New("boom")))

	sub := validSubmission()
	sub.ActivityType = "knitting"
	got := FieldErrors(Validator().Struct(sub))
	assert.Equal(t, "Unknown activity type", got["activitytype"])
}

func TestEthAddressTag(t *testing.T) {
	type request struct {
		Wallet string `validate:"eth_address"`
	}
	assert.NoError(t, Validator().Struct(request{}))
	assert.NoError(t, Validator().Struct(request{Wallet: "0x52908400098527886E0F7030069857D2E4169EE7"}))
	assert.Error(t, Validator().Struct(request{Wallet: "not-an-address"}))
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimAttendanceRequestValidation(t *testing.T) {
	valid := ClaimAttendanceRequest{SelectedCat: "dudu", Mood: "good"}
	assert.NoError(t, valid.Validate())

	// An unknown cat must be rejected up front, before the daily reward is
	// consumed by the engagement service.
	unknownCat := ClaimAttendanceRequest{SelectedCat: "garfield", Mood: "good"}
	assert.Error(t, unknownCat.Validate())

	badMood := ClaimAttendanceRequest{SelectedCat: "coco", Mood: "ecstatic"}
	assert.Error(t, badMood.Validate())

	missing := ClaimAttendanceRequest{}
	assert.Error(t, missing.Validate())
}

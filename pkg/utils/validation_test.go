package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createBody struct {
	Title     string `json:"title" validate:"required"`
	StartDate string `json:"startDate" validate:"omitempty,iso8601"`
	EventLink string `json:"eventLink" validate:"omitempty,url"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
}

func TestValidateStructPassesValidBody(t *testing.T) {
	assert.NoError(t, ValidateStruct(createBody{
		Title:     "Sample Event",
		StartDate: "2026-09-01T10:00:00Z",
		EventLink: "https://example.com/sample",
		Capacity:  10,
	}))
}

func TestValidateStructReportsOnlyFirstFailure(t *testing.T) {
	// Both title and startDate are invalid; only the first field in
	// declaration order is reported.
	err := ValidateStruct(createBody{StartDate: "not-a-date", Capacity: -1})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())
}

func TestValidateStructISO8601Tag(t *testing.T) {
	for _, good := range []string{"2026-09-01", "2026-09-01T10:00:00Z", "2026-09-01T10:00:00+02:00", "2026-09-01T10:00:00"} {
		assert.NoError(t, ValidateStruct(createBody{Title: "t", StartDate: good}), good)
	}

	err := ValidateStruct(createBody{Title: "t", StartDate: "01/09/2026"})
	require.Error(t, err)
	assert.Equal(t, "Invalid startDate format. Use ISO8601 format.", err.Error())
}

func TestValidateStructURLAndGteMessages(t *testing.T) {
	err := ValidateStruct(createBody{Title: "t", EventLink: "not a url"})
	require.Error(t, err)
	assert.Equal(t, "Invalid eventLink. Should be a URL", err.Error())

	err = ValidateStruct(createBody{Title: "t", Capacity: -5})
	require.Error(t, err)
	assert.Equal(t, "capacity should be a positive integer", err.Error())
}

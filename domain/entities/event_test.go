package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEvent() *Event {
	return &Event{
		EventID:     "sample-event",
		Title:       "Sample Event",
		Description: "An event for testing",
	}
}

func TestEventValidate(t *testing.T) {
	assert.NoError(t, validEvent().Validate())

	t.Run("missing required fields", func(t *testing.T) {
		e := validEvent()
		e.Title = ""
		assert.Error(t, e.Validate())

		e = validEvent()
		e.Description = ""
		assert.Error(t, e.Validate())

		e = validEvent()
		e.EventID = ""
		assert.Error(t, e.Validate())
	})

	t.Run("enum constraints", func(t *testing.T) {
		e := validEvent()
		e.Status = EventStatusUpcoming
		assert.NoError(t, e.Validate())

		e.Status = "Postponed"
		assert.Error(t, e.Validate())

		e = validEvent()
		e.EventType = "Rave"
		assert.Error(t, e.Validate())

		e = validEvent()
		e.PrivacySetting = PrivacyInvitation
		assert.NoError(t, e.Validate())
	})

	t.Run("capacity", func(t *testing.T) {
		e := validEvent()
		zero := 0
		e.Capacity = &zero
		assert.NoError(t, e.Validate())

		negative := -1
		e.Capacity = &negative
		assert.Error(t, e.Validate())
	})
}

func TestEventHasRSVP(t *testing.T) {
	e := validEvent()
	e.RSVPs = []string{"u1", "u2"}

	assert.True(t, e.HasRSVP("u1"))
	assert.False(t, e.HasRSVP("u3"))
}

func TestNormalizeStringSet(t *testing.T) {
	assert.Equal(t, []string{"u1", "u2"}, NormalizeStringSet([]string{"u1", "u1", "u2"}))
	assert.Equal(t, []string{"u2", "u1"}, NormalizeStringSet([]string{"u2", "u1", "u2"}))
	assert.Nil(t, NormalizeStringSet(nil))
	assert.Nil(t, NormalizeStringSet([]string{}))
}

func TestEventNormalizeSets(t *testing.T) {
	e := validEvent()
	e.Organizers = []string{"org1", "org1"}
	e.RSVPs = []string{}

	e.NormalizeSets()

	assert.Equal(t, []string{"org1"}, e.Organizers)
	assert.Nil(t, e.RSVPs)
}

func TestUpdateEventInputIsEmpty(t *testing.T) {
	in := &UpdateEventInput{}
	assert.True(t, in.IsEmpty())

	title := "New Title"
	in.Title = &title
	assert.False(t, in.IsEmpty())
}

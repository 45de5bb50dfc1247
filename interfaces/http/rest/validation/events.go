package validation

import (
	"regexp"

	"ntlango-api/domain/entities"
)

// projectionsPattern accepts a comma-separated list of field identifiers,
// e.g. "title,description,startDate".
var projectionsPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(,[a-zA-Z0-9_]+)*$`)

const projectionsMessage = `Invalid projections format. Use a comma-separated string (e.g., "title,description,startDate")`

// ProjectionsRule validates the projections query parameter
func ProjectionsRule() Rule {
	return Rule{
		Field: "projections",
		Checks: []Check{
			Matches(projectionsPattern, projectionsMessage),
		},
	}
}

// ReadEventsRules validates the query string of a list-events request. The
// same format constraints as the create/update bodies apply, expressed over
// raw query values.
func ReadEventsRules() []Rule {
	return []Rule{
		{Field: "title", Checks: []Check{NotEmpty("Invalid Title entered")}},
		{Field: "description", Checks: []Check{NotEmpty("Invalid Description entered")}},
		{Field: "startDate", Checks: []Check{ISO8601("Invalid start date format. Use ISO8601 format.")}},
		{Field: "endDate", Checks: []Check{ISO8601("Invalid end date format. Use ISO8601 format.")}},
		{Field: "location", Checks: []Check{NotEmpty("Location should be a non-empty string when provided")}},
		{Field: "organizers", Checks: []Check{NotEmpty("Invalid Organizers entered")}},
		{Field: "tags", Checks: []Check{NotEmpty("Invalid Tags entered")}},
		{Field: "eventType", Checks: []Check{OneOf(entities.EventTypeValues,
			"Invalid eventType. Must be one of: Concert, Conference, Networking, Party, Sport, Workshop, Other")}},
		{Field: "eventCategory", Checks: []Check{OneOf(entities.EventCategoryValues,
			"Invalid eventCategory. Must be one of: Arts, Music, Technology, Health, FoodAndDrink, Travel, Other")}},
		{Field: "capacity", Checks: []Check{NonNegativeInt("Capacity should be a positive integer")}},
		{Field: "rSVPs", Checks: []Check{NotEmpty("Invalid RSVPs entered")}},
		{Field: "status", Checks: []Check{OneOf(entities.EventStatusValues,
			"Invalid status. Must be one of: Cancelled, Completed, Ongoing, Upcoming")}},
		{Field: "privacySetting", Checks: []Check{OneOf(entities.PrivacySettingValues,
			"Invalid privacySetting. Must be one of: Public, Private, Invitation")}},
		ProjectionsRule(),
	}
}

// ReadEventByIDRules validates the query string of a single-event read
func ReadEventByIDRules() []Rule {
	return []Rule{
		ProjectionsRule(),
	}
}

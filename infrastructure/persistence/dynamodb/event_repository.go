package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ntlango-api/application/ports"
	"ntlango-api/domain/entities"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// EventRepository implements ports.EventRepository on a DynamoDB table keyed
// by EventID. It is the only component that constructs store queries for
// events; every store failure leaving this type is classified into the
// application error taxonomy.
type EventRepository struct {
	client    DynamoDBAPI
	tableName string
	logger    *zap.Logger
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(client DynamoDBAPI, tableName string, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// attributeNames maps wire-level field names to their storage attributes
var attributeNames = map[string]string{
	"_id":               "EventID",
	"eventId":           "EventID",
	"title":             "Title",
	"description":       "Description",
	"startDate":         "StartDate",
	"endDate":           "EndDate",
	"location":          "Location",
	"organizers":        "Organizers",
	"eventType":         "EventType",
	"eventCategory":     "EventCategory",
	"capacity":          "Capacity",
	"rSVPs":             "RSVPs",
	"tags":              "Tags",
	"eventLink":         "EventLink",
	"status":            "Status",
	"media":             "Media",
	"additionalDetails": "AdditionalDetails",
	"comments":          "Comments",
	"privacySetting":    "PrivacySetting",
	"createdAt":         "CreatedAt",
	"updatedAt":         "UpdatedAt",
}

func attributeName(field string) string {
	if name, ok := attributeNames[field]; ok {
		return name
	}
	return field
}

// Create inserts a new event document. A duplicate identifier is rejected
// by the store's conditional write and reported as an invalid argument.
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	event.NormalizeSets()
	if err := event.Validate(); err != nil {
		return nil, apperrors.NewInvalidArgumentError(err.Error())
	}

	now := utils.NowRFC3339()
	event.CreatedAt = now
	event.UpdatedAt = now

	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create event").WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(EventID)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, apperrors.NewInvalidArgumentError(
				fmt.Sprintf("(eventId = %s), already exists", event.EventID))
		}
		r.logger.Error("Failed to put event item",
			zap.String("eventID", event.EventID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to create event").WithCause(err)
	}

	r.logger.Debug("Event created",
		zap.String("eventID", event.EventID),
		zap.String("title", event.Title),
	)

	return event, nil
}

// ReadEventByID fetches one event by identifier, optionally restricted to
// the given projection fields. The identifier attribute is always included.
func (r *EventRepository) ReadEventByID(ctx context.Context, eventID string, projections []string) (*entities.Event, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       eventKey(eventID),
	}

	if len(projections) > 0 {
		expr, err := buildProjection(projections)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to read event").WithCause(err)
		}
		input.ProjectionExpression = expr.Projection()
		input.ExpressionAttributeNames = expr.Names()
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to get event item", zap.String("eventID", eventID), zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to read event").WithCause(err)
	}

	if len(result.Item) == 0 {
		return nil, apperrors.NewResourceNotFoundError("Event not found")
	}

	return unmarshalEvent(result.Item)
}

// ReadEvents fetches every event matching the filter conjunction. Zero
// matches yields an empty slice, never an error.
func (r *EventRepository) ReadEvents(ctx context.Context, filters ports.EventFilters, projections []string) ([]*entities.Event, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	builder := expression.NewBuilder()
	hasExpression := false

	if cond, ok := buildFilterCondition(filters); ok {
		builder = builder.WithFilter(cond)
		hasExpression = true
	}
	if len(projections) > 0 {
		builder = builder.WithProjection(projectionBuilder(projections))
		hasExpression = true
	}

	if hasExpression {
		expr, err := builder.Build()
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to read events").WithCause(err)
		}
		input.FilterExpression = expr.Filter()
		input.ProjectionExpression = expr.Projection()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	events := make([]*entities.Event, 0)
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("Failed to scan events", zap.Error(err))
			return nil, apperrors.NewInternalError("Failed to read events").WithCause(err)
		}
		for _, item := range page.Items {
			event, err := unmarshalEvent(item)
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
	}

	return events, nil
}

// UpdateEvent applies a partial field replacement and returns the
// post-update document. The identifier itself is never written.
func (r *EventRepository) UpdateEvent(ctx context.Context, eventID string, in *entities.UpdateEventInput) (*entities.Event, error) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	setClause := ""
	removeClause := ""

	appendSet := func(attr string, value types.AttributeValue) {
		placeholder := "#" + attr
		valueKey := ":" + attr
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = %s", placeholder, valueKey)
		names[placeholder] = attr
		values[valueKey] = value
	}

	// String-set attributes cannot be written empty; clearing one removes
	// the attribute instead. Duplicate members collapse.
	appendStringSet := func(attr string, members []string) {
		members = entities.NormalizeStringSet(members)
		if members == nil {
			placeholder := "#" + attr
			if removeClause != "" {
				removeClause += ", "
			}
			removeClause += placeholder
			names[placeholder] = attr
			return
		}
		appendSet(attr, &types.AttributeValueMemberSS{Value: members})
	}

	if in.Title != nil {
		appendSet("Title", stringAttr(*in.Title))
	}
	if in.Description != nil {
		appendSet("Description", stringAttr(*in.Description))
	}
	if in.StartDate != nil {
		appendSet("StartDate", stringAttr(*in.StartDate))
	}
	if in.EndDate != nil {
		appendSet("EndDate", stringAttr(*in.EndDate))
	}
	if in.Location != nil {
		appendSet("Location", stringAttr(*in.Location))
	}
	if in.Organizers != nil {
		appendStringSet("Organizers", *in.Organizers)
	}
	if in.EventType != nil {
		appendSet("EventType", stringAttr(*in.EventType))
	}
	if in.EventCategory != nil {
		appendSet("EventCategory", stringAttr(*in.EventCategory))
	}
	if in.Capacity != nil {
		appendSet("Capacity", &types.AttributeValueMemberN{Value: strconv.Itoa(*in.Capacity)})
	}
	if in.RSVPs != nil {
		appendStringSet("RSVPs", *in.RSVPs)
	}
	if in.Tags != nil {
		av, err := attributevalue.Marshal(*in.Tags)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to update event").WithCause(err)
		}
		appendSet("Tags", av)
	}
	if in.EventLink != nil {
		appendSet("EventLink", stringAttr(*in.EventLink))
	}
	if in.Status != nil {
		appendSet("Status", stringAttr(*in.Status))
	}
	if in.Media != nil {
		av, err := attributevalue.Marshal(*in.Media)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to update event").WithCause(err)
		}
		appendSet("Media", av)
	}
	if in.AdditionalDetails != nil {
		av, err := attributevalue.Marshal(*in.AdditionalDetails)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to update event").WithCause(err)
		}
		appendSet("AdditionalDetails", av)
	}
	if in.Comments != nil {
		av, err := attributevalue.Marshal(*in.Comments)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to update event").WithCause(err)
		}
		appendSet("Comments", av)
	}
	if in.PrivacySetting != nil {
		appendSet("PrivacySetting", stringAttr(*in.PrivacySetting))
	}

	appendSet("UpdatedAt", stringAttr(utils.NowRFC3339()))

	updateExpression := "SET " + setClause
	if removeClause != "" {
		updateExpression += " REMOVE " + removeClause
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       eventKey(eventID),
		UpdateExpression:          aws.String(updateExpression),
		ConditionExpression:       aws.String("attribute_exists(EventID)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, apperrors.NewResourceNotFoundError("Event not found")
		}
		r.logger.Error("Failed to update event item", zap.String("eventID", eventID), zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to update event").WithCause(err)
	}

	return unmarshalEvent(result.Attributes)
}

// DeleteEvent removes the document and returns its state immediately before
// deletion.
func (r *EventRepository) DeleteEvent(ctx context.Context, eventID string) (*entities.Event, error) {
	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 eventKey(eventID),
		ConditionExpression: aws.String("attribute_exists(EventID)"),
		ReturnValues:        types.ReturnValueAllOld,
	}

	result, err := r.client.DeleteItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, apperrors.NewResourceNotFoundError("Event not found")
		}
		r.logger.Error("Failed to delete event item", zap.String("eventID", eventID), zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to delete event").WithCause(err)
	}

	r.logger.Debug("Event deleted", zap.String("eventID", eventID))

	return unmarshalEvent(result.Attributes)
}

// RSVP adds the given user ids to the event's RSVP set. The store's ADD on
// a string set deduplicates, so the whole mutation is one atomic update and
// concurrent adds for different users never clobber each other.
func (r *EventRepository) RSVP(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error) {
	return r.mutateRSVPSet(ctx, eventID, "ADD RSVPs :userIds", userIDs)
}

// CancelRSVP removes the given user ids from the event's RSVP set. Removing
// an id that is not present leaves the set unchanged.
func (r *EventRepository) CancelRSVP(ctx context.Context, eventID string, userIDs []string) (*entities.Event, error) {
	return r.mutateRSVPSet(ctx, eventID, "DELETE RSVPs :userIds", userIDs)
}

// mutateRSVPSet issues exactly one atomic set update against the event.
// An update against a missing event id is rejected rather than upserting a
// phantom document.
func (r *EventRepository) mutateRSVPSet(ctx context.Context, eventID, updateExpression string, userIDs []string) (*entities.Event, error) {
	userIDs = entities.NormalizeStringSet(userIDs)
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 eventKey(eventID),
		UpdateExpression:    aws.String(updateExpression),
		ConditionExpression: aws.String("attribute_exists(EventID)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userIds": &types.AttributeValueMemberSS{Value: userIDs},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, apperrors.NewResourceNotFoundError("Event not found")
		}
		r.logger.Error("Failed to mutate RSVP set",
			zap.String("eventID", eventID),
			zap.Strings("userIDs", userIDs),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to update RSVPs").WithCause(err)
	}

	return unmarshalEvent(result.Attributes)
}

// Helpers

func eventKey(eventID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"EventID": &types.AttributeValueMemberS{Value: eventID},
	}
}

func stringAttr(value string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: value}
}

func unmarshalEvent(item map[string]types.AttributeValue) (*entities.Event, error) {
	var event entities.Event
	if err := attributevalue.UnmarshalMap(item, &event); err != nil {
		return nil, apperrors.NewInternalError("Failed to unmarshal event").WithCause(err)
	}
	return &event, nil
}

// projectionBuilder builds a projection over the requested wire-level field
// names; the identifier attribute is always part of the projection.
func projectionBuilder(projections []string) expression.ProjectionBuilder {
	proj := expression.NamesList(expression.Name("EventID"))
	for _, field := range projections {
		name := attributeName(field)
		if name == "EventID" {
			continue
		}
		proj = proj.AddNames(expression.Name(name))
	}
	return proj
}

func buildProjection(projections []string) (expression.Expression, error) {
	return expression.NewBuilder().WithProjection(projectionBuilder(projections)).Build()
}

// buildFilterCondition assembles the conjunction of all supplied filter
// entries. Set-membership entries match when the stored set intersects the
// supplied id list, expressed as an OR of contains() terms.
func buildFilterCondition(filters ports.EventFilters) (expression.ConditionBuilder, bool) {
	var cond expression.ConditionBuilder
	have := false

	and := func(next expression.ConditionBuilder) {
		if have {
			cond = cond.And(next)
		} else {
			cond = next
			have = true
		}
	}

	for field, value := range filters.Equals {
		name := expression.Name(attributeName(field))
		if field == "capacity" {
			if n, err := strconv.Atoi(value); err == nil {
				and(name.Equal(expression.Value(n)))
				continue
			}
		}
		and(name.Equal(expression.Value(value)))
	}

	for field, ids := range filters.MemberOf {
		if len(ids) == 0 {
			continue
		}
		name := attributeName(field)
		member := expression.Name(name).Contains(ids[0])
		for _, id := range ids[1:] {
			member = member.Or(expression.Name(name).Contains(id))
		}
		and(member)
	}

	return cond, have
}

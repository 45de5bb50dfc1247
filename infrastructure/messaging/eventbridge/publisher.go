// Package eventbridge publishes event lifecycle notifications to an AWS
// EventBridge bus. Delivery is best-effort by contract: a failed PutEvents
// never fails the HTTP request that triggered it.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const source = "ntlango.api"

// EventBridgeAPI is the subset of the EventBridge client the publisher uses
type EventBridgeAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// Publisher implements ports.EventPublisher on an EventBridge bus
type Publisher struct {
	client       EventBridgeAPI
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client EventBridgeAPI, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish emits one lifecycle notification. Failures are logged and
// swallowed so the mutation that already committed stays successful.
func (p *Publisher) Publish(ctx context.Context, detailType string, eventID string, detail interface{}) {
	payload, err := json.Marshal(detail)
	if err != nil {
		p.logger.Error("Failed to marshal notification detail",
			zap.String("detailType", detailType),
			zap.String("eventId", eventID),
			zap.Error(err),
		)
		return
	}

	entry := types.PutEventsRequestEntry{
		EventBusName: aws.String(p.eventBusName),
		Source:       aws.String(source),
		DetailType:   aws.String(detailType),
		Detail:       aws.String(string(payload)),
		Time:         aws.Time(time.Now().UTC()),
		Resources: []string{
			fmt.Sprintf("arn:aws:ntlango::%s", eventID),
		},
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		p.logger.Error("Failed to publish notification",
			zap.String("detailType", detailType),
			zap.String("eventId", eventID),
			zap.Error(err),
		)
		return
	}

	if result.FailedEntryCount > 0 {
		for _, e := range result.Entries {
			if e.ErrorCode != nil {
				p.logger.Error("Notification entry rejected",
					zap.String("detailType", detailType),
					zap.String("eventId", eventID),
					zap.String("errorCode", aws.ToString(e.ErrorCode)),
					zap.String("errorMessage", aws.ToString(e.ErrorMessage)),
				)
			}
		}
		return
	}

	p.logger.Debug("Notification published",
		zap.String("detailType", detailType),
		zap.String("eventId", eventID),
		zap.String("eventBus", p.eventBusName),
	)
}

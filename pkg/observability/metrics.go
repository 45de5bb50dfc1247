// Package observability provides CloudWatch metrics and X-Ray tracing
// helpers. Both are feature-flagged and degrade to no-ops when disabled.
package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchAPI is the subset of the CloudWatch client the metrics sink uses
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics is a best-effort CloudWatch metrics sink. A nil client turns
// every method into a no-op so callers never need to branch on the
// metrics feature flag.
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics sink
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordRequest records latency and count for one handled HTTP request
func (m *Metrics) RecordRequest(ctx context.Context, route, method string, status int, duration time.Duration) {
	if m.client == nil {
		return
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Route"), Value: aws.String(route)},
		{Name: aws.String("Method"), Value: aws.String(method)},
		{Name: aws.String("Status"), Value: aws.String(strconv.Itoa(status))},
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("RequestLatency"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
		},
		{
			MetricName: aws.String("RequestCount"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	}

	m.put(ctx, metricData)
}

// RecordError records one classified error occurrence
func (m *Metrics) RecordError(ctx context.Context, errorType string, statusCode int) {
	if m.client == nil {
		return
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("Errors"),
			Dimensions: []types.Dimension{
				{Name: aws.String("ErrorType"), Value: aws.String(errorType)},
				{Name: aws.String("StatusCode"), Value: aws.String(strconv.Itoa(statusCode))},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	}

	m.put(ctx, metricData)
}

// RecordLatency records latency for any named operation
func (m *Metrics) RecordLatency(ctx context.Context, operation string, latency time.Duration) {
	if m.client == nil {
		return
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("OperationLatency"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Operation"), Value: aws.String(operation)},
			},
			Value:     aws.Float64(float64(latency.Milliseconds())),
			Unit:      types.StandardUnitMilliseconds,
			Timestamp: aws.Time(time.Now()),
		},
	}

	m.put(ctx, metricData)
}

func (m *Metrics) put(ctx context.Context, metricData []types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		// Metrics never fail the operation that produced them.
		m.logger.Warn("Failed to send metrics", zap.Error(err))
	}
}

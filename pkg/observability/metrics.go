package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsClient is the subset of the CloudWatch API used here
type MetricsClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes application metrics to CloudWatch. Failures are
// swallowed so metric emission never affects request handling.
type Metrics struct {
	namespace string
	client    MetricsClient
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client MetricsClient) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// IncrementCounter records a count metric
func (m *Metrics) IncrementCounter(ctx context.Context, name string, dimensions ...types.Dimension) {
	m.put(ctx, types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(1),
		Unit:       types.StandardUnitCount,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dimensions,
	})
}

// RecordDuration records a latency metric in milliseconds
func (m *Metrics) RecordDuration(ctx context.Context, name string, duration time.Duration, dimensions ...types.Dimension) {
	m.put(ctx, types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(float64(duration.Milliseconds())),
		Unit:       types.StandardUnitMilliseconds,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dimensions,
	})
}

// RecordValue records a raw gauge value
func (m *Metrics) RecordValue(ctx context.Context, name string, value float64, dimensions ...types.Dimension) {
	m.put(ctx, types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       types.StandardUnitNone,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dimensions,
	})
}

// Dimension builds a CloudWatch dimension
func Dimension(name, value string) types.Dimension {
	return types.Dimension{
		Name:  aws.String(name),
		Value: aws.String(value),
	}
}

func (m *Metrics) put(ctx context.Context, datum types.MetricDatum) {
	if m == nil || m.client == nil {
		return
	}
	_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []types.MetricDatum{datum},
	})
}

package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/propmarket/server/internal/infra/events"
)

// Config holds the queue settings.
type Config struct {
	QueueURL string
	Region   string
	// Endpoint overrides the AWS endpoint, e.g. for localstack.
	Endpoint string
}

// SendMessageAPI is the subset of the SQS client the forwarder needs.
type SendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// NewClient creates an SQS client from the default AWS credential chain.
func NewClient(ctx context.Context, cfg Config) (*sqs.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Forwarder copies payment events from the bus onto an SQS queue.
type Forwarder struct {
	client   SendMessageAPI
	queueURL string
	logger   *zap.Logger
}

// NewForwarder creates a new Forwarder.
func NewForwarder(client SendMessageAPI, queueURL string, logger *zap.Logger) *Forwarder {
	return &Forwarder{client: client, queueURL: queueURL, logger: logger}
}

func (f *Forwarder) Handles() []string {
	return []string{events.PaymentSucceededType, events.PaymentFailedType}
}

// Handle sends the event as a JSON body with an event_type attribute.
func (f *Forwarder) Handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	out, err := f.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(f.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.EventType()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", event.EventType(), err)
	}

	f.logger.Debug("event forwarded",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

var _ events.Handler = (*Forwarder)(nil)

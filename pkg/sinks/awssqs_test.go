package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSSinkPublishSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Publish(context.Background(), Event{ExchangeID: "ex-1", Outcome: OutcomeError})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["exchange_id"]
	if !ok || aws.ToString(attr.StringValue) != "ex-1" {
		t.Fatalf("exchange_id attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if got := aws.ToString(client.input.MessageAttributes["outcome"].StringValue); got != OutcomeError {
		t.Fatalf("outcome attribute = %s", got)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"exchange_id":"ex-1"`) {
		t.Fatalf("MessageBody missing exchange_id: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSSinkPublishError(t *testing.T) {
	client := &fakeSQSClient{err: errors.New("boom")}
	sink := &sqsSink{
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Publish(context.Background(), Event{ExchangeID: "ex-1"}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

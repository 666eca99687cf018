package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type dynamoResultItem struct {
	RequestId string `dynamodbav:"request_id"`
	Status    string `dynamodbav:"status"`
	Topic     string `dynamodbav:"topic"`
	VideoPath string `dynamodbav:"video_path"`
	Error     string `dynamodbav:"error"`
	TTL       int64  `dynamodbav:"ttl"`
}

type dynamoResultStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

// NewDynamoResultStore backs the request-id keyed result lookup with a TTL'd
// DynamoDB table, so results survive restarts and expire on their own.
func NewDynamoResultStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.ResultStorePort {
	return &dynamoResultStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoResultStore) Save(ctx context.Context, result domain.StoredResult) error {
	item := dynamoResultItem{
		RequestId: result.RequestID,
		Status:    string(result.Status),
		Topic:     result.Topic,
		VideoPath: result.VideoPath,
		Error:     result.Error,
		TTL:       time.Now().Add(time.Duration(s.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal result item", map[string]interface{}{
			"request_id": result.RequestID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save result item", map[string]interface{}{
			"request_id": result.RequestID,
		})
		return err
	}

	return nil
}

func (s *dynamoResultStore) Get(ctx context.Context, requestID string) (*domain.StoredResult, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"request_id": {S: aws.String(requestID)},
		},
	}

	out, err := s.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to fetch result item", map[string]interface{}{
			"request_id": requestID,
		})
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrResultNotFound, requestID)
	}

	var item dynamoResultItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		s.logger.Error(err, "Failed to unmarshal result item")
		return nil, err
	}

	return &domain.StoredResult{
		RequestID: item.RequestId,
		Status:    domain.RequestStatus(item.Status),
		Topic:     item.Topic,
		VideoPath: item.VideoPath,
		Error:     item.Error,
	}, nil
}

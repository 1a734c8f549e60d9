package store

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/imposter-project/jsonmock/internal/config"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// DynamoDBStoreProvider keeps items in a single table with the partition key
// StoreName and the sort key Key
type DynamoDBStoreProvider struct {
	prefix    keyPrefix
	region    string
	tableName string
	ddb       *dynamodb.DynamoDB
}

func NewDynamoDBStoreProvider(cfg config.StoreConfig, prefix keyPrefix) *DynamoDBStoreProvider {
	return &DynamoDBStoreProvider{
		prefix:    prefix,
		region:    cfg.AWSRegion,
		tableName: cfg.DynamoDBTable,
	}
}

func (p *DynamoDBStoreProvider) InitStores() error {
	if p.tableName == "" {
		return fmt.Errorf("DynamoDB table name must be set")
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(p.region),
	})
	if err != nil {
		return fmt.Errorf("failed to create AWS session: %w", err)
	}
	p.ddb = dynamodb.New(sess)
	return nil
}

func (p *DynamoDBStoreProvider) itemKey(storeName, key string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"StoreName": {S: aws.String(storeName)},
		"Key":       {S: aws.String(key)},
	}
}

func (p *DynamoDBStoreProvider) GetValue(storeName, key string) (interface{}, bool) {
	result, err := p.ddb.GetItem(&dynamodb.GetItemInput{
		TableName:      aws.String(p.tableName),
		Key:            p.itemKey(storeName, p.prefix.apply(key)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logger.Errorf("failed to get item: %v", err)
		return nil, false
	}
	if result.Item == nil {
		return nil, false
	}
	return decodeItemValue(result.Item)
}

func (p *DynamoDBStoreProvider) StoreValue(storeName, key string, value interface{}) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		logger.Errorf("failed to marshal value: %v", err)
		return
	}
	item := p.itemKey(storeName, p.prefix.apply(key))
	item["Value"] = &dynamodb.AttributeValue{S: aws.String(string(valueBytes))}

	if _, err = p.ddb.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(p.tableName),
		Item:      item,
	}); err != nil {
		logger.Errorf("failed to put item: %v", err)
	}
}

// queryStore returns all items of a store whose keys start with keyPrefix
func (p *DynamoDBStoreProvider) queryStore(storeName, keyPrefix string) ([]map[string]*dynamodb.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(p.tableName),
		ConsistentRead:         aws.Bool(true),
		KeyConditionExpression: aws.String("StoreName = :storeName"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":storeName": {S: aws.String(storeName)},
		},
	}
	if keyPrefix != "" {
		input.KeyConditionExpression = aws.String("StoreName = :storeName AND begins_with(#k, :keyPrefix)")
		input.ExpressionAttributeNames = map[string]*string{"#k": aws.String("Key")}
		input.ExpressionAttributeValues[":keyPrefix"] = &dynamodb.AttributeValue{S: aws.String(keyPrefix)}
	}

	var items []map[string]*dynamodb.AttributeValue
	err := p.ddb.QueryPages(input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		items = append(items, page.Items...)
		return true
	})
	return items, err
}

func (p *DynamoDBStoreProvider) GetAllValues(storeName, keyPrefix string) map[string]interface{} {
	items, err := p.queryStore(storeName, p.prefix.apply(keyPrefix))
	if err != nil {
		logger.Errorf("failed to query items: %v", err)
		return nil
	}
	values := make(map[string]interface{})
	for _, item := range items {
		value, ok := decodeItemValue(item)
		if !ok {
			continue
		}
		values[p.prefix.remove(aws.StringValue(item["Key"].S))] = value
	}
	return values
}

func (p *DynamoDBStoreProvider) DeleteValue(storeName, key string) {
	p.deleteRawKey(storeName, p.prefix.apply(key))
}

func (p *DynamoDBStoreProvider) deleteRawKey(storeName, rawKey string) {
	if _, err := p.ddb.DeleteItem(&dynamodb.DeleteItemInput{
		TableName: aws.String(p.tableName),
		Key:       p.itemKey(storeName, rawKey),
	}); err != nil {
		logger.Errorf("failed to delete item: %v", err)
	}
}

func (p *DynamoDBStoreProvider) DeleteStore(storeName string) {
	items, err := p.queryStore(storeName, p.prefix.apply(""))
	if err != nil {
		logger.Errorf("failed to query items for deletion: %v", err)
		return
	}
	for _, item := range items {
		p.deleteRawKey(storeName, aws.StringValue(item["Key"].S))
	}
}

func decodeItemValue(item map[string]*dynamodb.AttributeValue) (interface{}, bool) {
	attr, ok := item["Value"]
	if !ok || attr.S == nil {
		return nil, false
	}
	var value interface{}
	if err := json.Unmarshal([]byte(*attr.S), &value); err != nil {
		logger.Errorf("failed to unmarshal value: %v", err)
		return nil, false
	}
	return value, true
}

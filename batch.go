package adapter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/fospitia/dynamodb-adapter/internal/shared"
)

// DefaultBatchSize is the DynamoDB BatchWriteItem per-request item cap.
const DefaultBatchSize = 25

// putRequest wraps an encoded policy item in a batch put operation.
func putRequest(item map[string]types.AttributeValue) types.WriteRequest {
	return types.WriteRequest{
		PutRequest: &types.PutRequest{Item: item},
	}
}

// deleteRequest wraps an item identifier in a batch delete operation.
func deleteRequest(id string) types.WriteRequest {
	return types.WriteRequest{
		DeleteRequest: &types.DeleteRequest{Key: idKey(id)},
	}
}

// batchWrite issues one BatchWriteItem call per page of requests. Pages are
// written strictly one after another, never concurrently; the first failed
// page aborts the operation and pages already written stay committed.
func (a *DynamoDBAdapter) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	for _, page := range shared.Pages(requests, a.batchSize) {
		_, err := a.db.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{a.tableName: page},
		})
		if err != nil {
			a.logger.Error("failed to batch write policy rules", "error", err)
			return NewStoreError(err)
		}
	}

	return nil
}

// deleteIDs bulk-deletes the items with the given identifiers.
func (a *DynamoDBAdapter) deleteIDs(ctx context.Context, ids []string) error {
	requests := make([]types.WriteRequest, 0, len(ids))
	for _, id := range ids {
		requests = append(requests, deleteRequest(id))
	}
	return a.batchWrite(ctx, requests)
}

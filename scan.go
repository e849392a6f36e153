package adapter

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// scanFilter is a server-side filter expression with its named placeholders.
type scanFilter struct {
	expression string
	names      map[string]string
	values     map[string]types.AttributeValue
}

// prefixFilter builds a filter expression requiring policy type equality plus
// equality on each non-empty field value, mapped to the vN attribute at
// fieldIndex plus its position. Empty values are skipped and act as wildcards
// for their position.
func prefixFilter(ptype string, fieldIndex int, fieldValues []string) *scanFilter {
	f := &scanFilter{
		expression: "#pType = :pType",
		names:      map[string]string{"#pType": attrPType},
		values: map[string]types.AttributeValue{
			":pType": &types.AttributeValueMemberS{Value: ptype},
		},
	}

	for pos, val := range fieldValues {
		if val == "" {
			continue
		}
		key := fieldAttr(fieldIndex + pos)
		f.expression += fmt.Sprintf(" AND #%s = :%s", key, key)
		f.names["#"+key] = key
		f.values[":"+key] = &types.AttributeValueMemberS{Value: val}
	}

	return f
}

// scanItems retrieves every item matched by input, following pagination
// cursors until the table is exhausted.
func (a *DynamoDBAdapter) scanItems(ctx context.Context, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue

	paginator := dynamodb.NewScanPaginator(a.db, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			a.logger.Error("failed to scan policy table", "error", err)
			return nil, NewStoreError(err)
		}
		items = append(items, page.Items...)
	}

	return items, nil
}

// scanIDs retrieves the identifiers of every item matched by filter, or of
// the whole table when filter is nil.
func (a *DynamoDBAdapter) scanIDs(ctx context.Context, filter *scanFilter) ([]string, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(a.tableName)}
	if filter != nil {
		input.FilterExpression = aws.String(filter.expression)
		input.ExpressionAttributeNames = filter.names
		input.ExpressionAttributeValues = filter.values
	}

	items, err := a.scanItems(ctx, input)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, item := range items {
		if id, ok := itemID(item); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

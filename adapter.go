package adapter

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/casbin/casbin/v2/model"
)

// dynamoDB is an interface that represents the DynamoDB client calls used by
// the adapter.
type dynamoDB interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Filter restricts a filtered policy load to rules matching per-section field
// patterns: P applies to p-class rules and G to everything else. A non-empty
// pattern at position i requires exact equality with the rule field at that
// position; empty patterns match any value.
type Filter struct {
	P []string
	G []string
}

// Adapter defines the storage operations consumed by the policy enforcement
// engine.
type Adapter interface {
	LoadPolicy(ctx context.Context, m model.Model) error
	LoadFilteredPolicy(ctx context.Context, m model.Model, filter *Filter) error
	SavePolicy(ctx context.Context, m model.Model) error
	ClearPolicy(ctx context.Context) error
	IsFiltered() bool
	AddPolicy(ctx context.Context, sec string, ptype string, rule []string) (bool, error)
	AddPolicies(ctx context.Context, sec string, ptype string, rules [][]string) (bool, error)
	RemovePolicy(ctx context.Context, sec string, ptype string, rule []string) (bool, error)
	RemovePolicies(ctx context.Context, sec string, ptype string, rules [][]string) (bool, error)
	RemoveFilteredPolicy(ctx context.Context, sec string, ptype string, fieldIndex int, fieldValues ...string) (bool, error)
}

// DynamoDBAdapter is a DynamoDB implementation of the Adapter interface.
//
// Bulk mutations are written in sequential batches. A failed batch aborts the
// whole operation and batches already written are not rolled back, so bulk
// operations are not atomic across pages.
type DynamoDBAdapter struct {
	db        dynamoDB
	tableName string
	batchSize int
	logger    *slog.Logger
	filtered  bool
}

var _ Adapter = (*DynamoDBAdapter)(nil)

// NewDynamoDBAdapter creates a new DynamoDBAdapter storing policy rules in
// the given table.
func NewDynamoDBAdapter(db dynamoDB, tableName string, opts ...Option) *DynamoDBAdapter {
	a := &DynamoDBAdapter{
		db:        db,
		tableName: tableName,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// loadIntoModel scans the whole table and adds every rule passing the filter
// to the model. It reports whether any rule was filtered out.
func (a *DynamoDBAdapter) loadIntoModel(ctx context.Context, m model.Model, filter *Filter) (bool, error) {
	items, err := a.scanItems(ctx, &dynamodb.ScanInput{TableName: aws.String(a.tableName)})
	if err != nil {
		return false, err
	}

	filtered := false
	for _, item := range items {
		ptype, rule := itemToPolicy(item)
		if ptype == "" || len(rule) == 0 {
			a.logger.Error("scanned item does not decode to a policy rule")
			return false, NewInvalidPolicyError()
		}

		// The first character of the policy type selects the section.
		sec := ptype[:1]
		patterns := filter.P
		if sec != "p" {
			patterns = filter.G
		}

		skip := false
		for i, pattern := range patterns {
			if pattern != "" && (i >= len(rule) || pattern != rule[i]) {
				skip = true
				break
			}
		}
		if skip {
			filtered = true
			continue
		}

		m.AddPolicy(sec, ptype, rule)
	}

	return filtered, nil
}

// LoadPolicy loads every stored policy rule into the model.
func (a *DynamoDBAdapter) LoadPolicy(ctx context.Context, m model.Model) error {
	_, err := a.loadIntoModel(ctx, m, &Filter{})
	return err
}

// LoadFilteredPolicy loads the stored policy rules matching filter into the
// model and records whether any rule was left out. A nil filter loads
// everything.
func (a *DynamoDBAdapter) LoadFilteredPolicy(ctx context.Context, m model.Model, filter *Filter) error {
	if filter == nil {
		filter = &Filter{}
	}

	filtered, err := a.loadIntoModel(ctx, m, filter)
	if err != nil {
		return err
	}

	a.filtered = filtered
	return nil
}

// IsFiltered reports whether the last filtered load left rules out of the
// model.
func (a *DynamoDBAdapter) IsFiltered() bool {
	return a.filtered
}

// SavePolicy writes every rule in both model sections to the table.
func (a *DynamoDBAdapter) SavePolicy(ctx context.Context, m model.Model) error {
	var requests []types.WriteRequest
	for _, sec := range []string{"p", "g"} {
		for ptype, ast := range m[sec] {
			for _, rule := range ast.Policy {
				requests = append(requests, putRequest(policyToItem(ptype, rule)))
			}
		}
	}

	if len(requests) == 0 {
		return nil
	}

	return a.batchWrite(ctx, requests)
}

// ClearPolicy deletes every item in the table.
func (a *DynamoDBAdapter) ClearPolicy(ctx context.Context) error {
	ids, err := a.scanIDs(ctx, nil)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}

	return a.deleteIDs(ctx, ids)
}

// AddPolicy stores a single policy rule. Re-adding an existing rule succeeds
// silently under the table's upsert semantics.
func (a *DynamoDBAdapter) AddPolicy(ctx context.Context, sec string, ptype string, rule []string) (bool, error) {
	_, err := a.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(a.tableName),
		Item:      policyToItem(ptype, rule),
	})
	if err != nil {
		a.logger.Error("failed to put policy rule", "error", err)
		return false, NewStoreError(err)
	}

	return true, nil
}

// AddPolicies stores the given rules in batches. It returns false when rules
// is empty and nothing was written.
func (a *DynamoDBAdapter) AddPolicies(ctx context.Context, sec string, ptype string, rules [][]string) (bool, error) {
	if len(rules) == 0 {
		return false, nil
	}

	requests := make([]types.WriteRequest, 0, len(rules))
	for _, rule := range rules {
		requests = append(requests, putRequest(policyToItem(ptype, rule)))
	}

	if err := a.batchWrite(ctx, requests); err != nil {
		return false, err
	}

	return true, nil
}

// RemovePolicy deletes a single policy rule by its recomputed identifier. It
// returns true only when a stored rule actually existed and was deleted.
func (a *DynamoDBAdapter) RemovePolicy(ctx context.Context, sec string, ptype string, rule []string) (bool, error) {
	res, err := a.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(a.tableName),
		Key:          idKey(policyID(ptype, rule)),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		a.logger.Error("failed to delete policy rule", "error", err)
		return false, NewStoreError(err)
	}

	return len(res.Attributes) > 0, nil
}

// RemovePolicies deletes the given rules in batches by their recomputed
// identifiers. Unlike RemovePolicy it does not confirm per-rule existence; it
// returns true whenever the batches succeed, and false when rules is empty.
func (a *DynamoDBAdapter) RemovePolicies(ctx context.Context, sec string, ptype string, rules [][]string) (bool, error) {
	if len(rules) == 0 {
		return false, nil
	}

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, policyID(ptype, rule))
	}

	if err := a.deleteIDs(ctx, ids); err != nil {
		return false, err
	}

	return true, nil
}

// RemoveFilteredPolicy deletes every rule of the given policy type whose
// fields starting at fieldIndex equal the supplied values. Empty values act
// as wildcards for their position. It returns false when fieldValues is empty
// or no stored rule matched.
func (a *DynamoDBAdapter) RemoveFilteredPolicy(ctx context.Context, sec string, ptype string, fieldIndex int, fieldValues ...string) (bool, error) {
	if len(fieldValues) == 0 {
		return false, nil
	}

	ids, err := a.scanIDs(ctx, prefixFilter(ptype, fieldIndex, fieldValues))
	if err != nil {
		return false, err
	}

	if len(ids) == 0 {
		return false, nil
	}

	if err := a.deleteIDs(ctx, ids); err != nil {
		return false, err
	}

	return true, nil
}

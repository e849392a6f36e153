/*
Package adapter provides a Casbin policy storage adapter backed by Amazon DynamoDB.

Policy rules are stored as independent items in a single table. Each item is
keyed by a deterministic MD5 identifier derived from the rule itself, so a
rule can be removed by recomputing its identifier without reading the table
first. Bulk operations are written in sequential batches bounded by the
DynamoDB batch-write item cap; a failed batch aborts the operation and
batches already written are not rolled back.

The adapter can be used directly through its context-aware Adapter contract,
or plugged into a casbin enforcer through the CasbinAdapter wrapper:

	client := dynamodb.NewFromConfig(cfg)
	a := adapter.NewDynamoDBAdapter(client, "casbin_policies")
	e, err := casbin.NewEnforcer(m, adapter.NewCasbinAdapter(a))
*/
package adapter

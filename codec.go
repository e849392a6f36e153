package adapter

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrID    = "id"
	attrPType = "pType"

	// maxFields is the number of positional rule fields an item can hold (v0..v5).
	maxFields = 6
)

// fieldAttr returns the attribute name for the rule field at index i.
func fieldAttr(i int) string {
	return "v" + strconv.Itoa(i)
}

// policyID derives the deterministic item identifier for a policy rule. The
// identifier is the lowercase hex MD5 digest of the policy type followed by
// every supplied field up to v5, each preceded by a comma. Fields that are
// present but empty still contribute their separator. The identifier depends
// only on the rule itself, so a delete can recompute it without a prior read.
func policyID(ptype string, rule []string) string {
	var line strings.Builder
	line.WriteString(ptype)
	for i := 0; i < maxFields && i < len(rule); i++ {
		line.WriteString(",")
		line.WriteString(rule[i])
	}

	digest := md5.Sum([]byte(line.String()))
	return hex.EncodeToString(digest[:])
}

// policyToItem encodes a policy rule as a DynamoDB item. Empty fields are
// omitted rather than stored as empty strings.
func policyToItem(ptype string, rule []string) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		attrPType: &types.AttributeValueMemberS{Value: ptype},
	}

	for i := 0; i < maxFields && i < len(rule); i++ {
		if rule[i] != "" {
			item[fieldAttr(i)] = &types.AttributeValueMemberS{Value: rule[i]}
		}
	}

	item[attrID] = &types.AttributeValueMemberS{Value: policyID(ptype, rule)}
	return item
}

// itemToPolicy decodes a DynamoDB item back into a policy rule. Fields are
// read in order starting at v0 and reading stops at the first absent
// attribute, so a positional gap truncates the reconstructed rule.
func itemToPolicy(item map[string]types.AttributeValue) (string, []string) {
	var ptype string
	if att, ok := item[attrPType].(*types.AttributeValueMemberS); ok {
		ptype = att.Value
	}

	var rule []string
	for i := 0; i < maxFields; i++ {
		att, ok := item[fieldAttr(i)].(*types.AttributeValueMemberS)
		if !ok {
			break
		}
		rule = append(rule, att.Value)
	}

	return ptype, rule
}

// itemID extracts the identifier attribute from a scanned item.
func itemID(item map[string]types.AttributeValue) (string, bool) {
	att, ok := item[attrID].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return att.Value, true
}

// idKey builds the primary key mapping for an item identifier.
func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: id},
	}
}

package adapter

import (
	"context"
	"errors"

	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
)

// CasbinAdapter adapts a DynamoDBAdapter to the casbin persist interfaces so
// it can be handed straight to casbin.NewEnforcer.
type CasbinAdapter struct {
	a *DynamoDBAdapter
}

var (
	_ persist.Adapter         = (*CasbinAdapter)(nil)
	_ persist.BatchAdapter    = (*CasbinAdapter)(nil)
	_ persist.FilteredAdapter = (*CasbinAdapter)(nil)
)

// NewCasbinAdapter wraps the given adapter.
func NewCasbinAdapter(a *DynamoDBAdapter) *CasbinAdapter {
	return &CasbinAdapter{a: a}
}

func (c *CasbinAdapter) LoadPolicy(m model.Model) error {
	return c.a.LoadPolicy(context.Background(), m)
}

// LoadFilteredPolicy loads only the rules matching filter, which must be a
// *Filter or Filter value. A nil filter loads everything.
func (c *CasbinAdapter) LoadFilteredPolicy(m model.Model, filter interface{}) error {
	switch f := filter.(type) {
	case nil:
		return c.a.LoadPolicy(context.Background(), m)
	case *Filter:
		return c.a.LoadFilteredPolicy(context.Background(), m, f)
	case Filter:
		return c.a.LoadFilteredPolicy(context.Background(), m, &f)
	default:
		return errors.New("invalid filter type")
	}
}

func (c *CasbinAdapter) IsFiltered() bool {
	return c.a.IsFiltered()
}

func (c *CasbinAdapter) SavePolicy(m model.Model) error {
	return c.a.SavePolicy(context.Background(), m)
}

func (c *CasbinAdapter) AddPolicy(sec string, ptype string, rule []string) error {
	_, err := c.a.AddPolicy(context.Background(), sec, ptype, rule)
	return err
}

func (c *CasbinAdapter) AddPolicies(sec string, ptype string, rules [][]string) error {
	_, err := c.a.AddPolicies(context.Background(), sec, ptype, rules)
	return err
}

func (c *CasbinAdapter) RemovePolicy(sec string, ptype string, rule []string) error {
	_, err := c.a.RemovePolicy(context.Background(), sec, ptype, rule)
	return err
}

func (c *CasbinAdapter) RemovePolicies(sec string, ptype string, rules [][]string) error {
	_, err := c.a.RemovePolicies(context.Background(), sec, ptype, rules)
	return err
}

func (c *CasbinAdapter) RemoveFilteredPolicy(sec string, ptype string, fieldIndex int, fieldValues ...string) error {
	_, err := c.a.RemoveFilteredPolicy(context.Background(), sec, ptype, fieldIndex, fieldValues...)
	return err
}

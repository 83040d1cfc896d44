// Package collect provides data collectors: systems that harvest records
// from a running model. Collectors schedule like any other system but
// default to priority -1 so they observe the tick after behavior systems
// have run.
package collect

import (
	"github.com/ecsim/ecsim"
)

// Record is one collected observation.
type Record = map[string]any

// Collector is a system that accumulates records.
type Collector interface {
	ecsim.System

	// Records returns the records collected so far.
	Records() []Record
}

// BaseCollector carries the record list shared by all collectors. Embed it
// and call Append from Execute.
type BaseCollector struct {
	ecsim.BaseSystem
	records []Record
}

// NewBaseCollector creates the embeddable collector core. Priority
// defaults to -1; pass ecsim.WithPriority to override.
func NewBaseCollector(id string, m *ecsim.Model, opts ...ecsim.SystemOption) BaseCollector {
	all := append([]ecsim.SystemOption{ecsim.WithPriority(-1)}, opts...)
	return BaseCollector{BaseSystem: ecsim.NewBaseSystem(id, m, all...)}
}

// Records returns the collected records.
func (c *BaseCollector) Records() []Record { return c.records }

// Append adds a record.
func (c *BaseCollector) Append(r Record) { c.records = append(c.records, r) }

// Clear drops all collected records.
func (c *BaseCollector) Clear() { c.records = c.records[:0] }

package collect

import "github.com/ecsim/ecsim"

// AgentFunc extracts one value from an agent. Return ok=false to skip the
// agent.
type AgentFunc func(a *ecsim.Agent) (value any, ok bool)

// CompositeFunc derives aggregate values from the whole population, for
// example a mean or a gini index. The returned record is merged into the
// per-agent record; return nil to add nothing.
type CompositeFunc func(agents []*ecsim.Agent) Record

// AgentCollector walks the environment's population every execution and
// builds one record per tick: agent id to extracted value, plus any
// composite values. Empty records are not kept.
type AgentCollector struct {
	BaseCollector
	agentFn     AgentFunc
	compositeFn CompositeFunc
	stampTick   bool
	sysOpts     []ecsim.SystemOption
}

var _ Collector = (*AgentCollector)(nil)

// AgentOption adjusts an AgentCollector.
type AgentOption func(*AgentCollector)

// WithComposite adds an aggregate function run after the per-agent pass.
func WithComposite(fn CompositeFunc) AgentOption {
	return func(c *AgentCollector) { c.compositeFn = fn }
}

// WithTickStamp adds the current tick to every record under the key
// "tick".
func WithTickStamp() AgentOption {
	return func(c *AgentCollector) { c.stampTick = true }
}

// WithSystemOptions forwards scheduling options to the underlying system.
func WithSystemOptions(opts ...ecsim.SystemOption) AgentOption {
	return func(c *AgentCollector) { c.sysOpts = append(c.sysOpts, opts...) }
}

// NewAgentCollector creates a collector extracting fn's value from every
// agent on each execution.
func NewAgentCollector(id string, m *ecsim.Model, fn AgentFunc, opts ...AgentOption) *AgentCollector {
	c := &AgentCollector{agentFn: fn}
	for _, opt := range opts {
		opt(c)
	}
	c.BaseCollector = NewBaseCollector(id, m, c.sysOpts...)
	return c
}

// Execute collects one record from the current population.
func (c *AgentCollector) Execute() {
	m := c.Model()
	record := Record{}
	if c.stampTick {
		record["tick"] = m.Scheduler().Tick()
	}

	agents := m.Environment().Agents()
	for _, a := range agents {
		if v, ok := c.agentFn(a); ok {
			record[a.ID()] = v
		}
	}
	if c.compositeFn != nil {
		for k, v := range c.compositeFn(agents) {
			record[k] = v
		}
	}

	if len(record) > 0 {
		c.Append(record)
	}
}

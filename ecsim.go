// Package ecsim provides an Entity-Component-System runtime for agent-based
// simulations.
//
// ECSIM is a single-process simulation substrate built around four ideas:
//   - Agents own typed data bundles (components), at most one per kind
//   - Environments own populations of agents and answer filtered queries
//   - Systems are scheduled units of behaviour fired by a deterministic
//     tick scheduler
//   - A Model composes one environment, one scheduler and one seeded
//     random source, and is advanced with Execute(n)
//
// # Quick Start
//
// Build a model, populate it and run it:
//
//	model := ecsim.NewModel(ecsim.WithSeed(42))
//
//	ant := ecsim.NewAgent("ant-0", model)
//	_ = ant.AddComponent(&Hunger{Level: 10})
//	_ = model.Environment().AddAgent(ant)
//
//	_ = model.Scheduler().AddSystem(NewForageSystem(model))
//	_ = model.Execute(100)
//
// # Components
//
// Components are plain Go structs that embed BaseComponent:
//
//	type Hunger struct {
//	    ecsim.BaseComponent
//	    Level int
//	}
//
//	_ = ant.AddComponent(&Hunger{Level: 10})
//	hunger := ecsim.Get[Hunger](ant)
//	_ = ant.RemoveComponent(ecsim.KindOf[Hunger]())
//
// # Systems
//
// Systems embed BaseSystem for their scheduling metadata and implement
// Execute, typically iterating a component pool:
//
//	type ForageSystem struct {
//	    ecsim.BaseSystem
//	}
//
//	func (s *ForageSystem) Execute() {
//	    for _, c := range s.Model().Scheduler().Components(ecsim.KindOf[Hunger]()) {
//	        c.(*Hunger).Level--
//	    }
//	}
//
// # Spatial environments
//
// SpaceWorld tracks continuous agent positions; DiscreteWorld adds a
// columnar per-cell table and Moore / von Neumann neighbourhood queries on
// line, grid and cube topologies. See NewLineWorld, NewGridWorld and
// NewCubeWorld.
//
// # Determinism
//
// All randomness flows through the model's seeded source. Given the same
// seed and the same sequence of calls, agent iteration order, Shuffle
// permutations and RandomAgent draws are bit-for-bit reproducible, which is
// what the batch runner in package batch relies on.
package ecsim

// Version is the ECSIM version.
const Version = "1.0.0"

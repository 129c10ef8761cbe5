/*
Package domain contains the shared vocabulary of the strata store.

It defines the records observers receive, the lifecycle hooks, and the error
taxonomy returned by registration, Commit and Dispatch. The package has no
dependencies on the engine itself, so adapters (metrics, CLI, declarative
definitions) can depend on it without pulling in the runtime.

# Key Entities

  - MutationRecord: what subscribers receive after every successful commit.
  - ActionRecord: what action subscribers receive before an action runs.
  - Typed: the object-style payload contract (a payload that names its own type).
  - LifecycleHooks: callbacks for commit, dispatch and getter evaluation.
*/
package domain

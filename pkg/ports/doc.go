/*
Package ports defines the driven ports (interfaces) for the Conduit engine.

These interfaces decouple the core traversal logic from external
implementations, allowing the same pipelines to run against different
effect executors and session backends.

# Key Interfaces

  - EffectDispatcher: Executes the opaque side-effects requested by Update
    steps and produces the result messages that resume paused traversals.
  - SessionStore: Persists per-session conn data across serverless
    invocations (memory, Redis, SQLite adapters are provided).
*/
package ports

/*
Package domain contains the core domain models for the Conduit engine.

It defines the fundamental entities of the pipeline machinery: the Conn
(a single request/response exchange threaded through a pipeline), the
effect types used at asynchronous boundaries, and the lifecycle events
emitted during traversal. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Conn: Captures one HTTP exchange (request, response under construction,
    session data) plus its unsent/sent status.
  - EffectRequest / EffectResult: A structural representation of a
    side-effect the host should execute, and the message that resumes the
    paused traversal once it has.
  - LifecycleHooks: Optional observability callbacks fired by the executor.
*/
package domain

/*
Package pipeline defines the ordered step sequences that Conduit executes
against a Conn.

A Pipeline is an immutable, append-only list of steps. There are exactly
three step variants:

  - Transform: a pure conn-to-conn function (a "plug").
  - Update: an effectful step that may request side effects and pause the
    traversal until their result arrives (a "loop").
  - Router: a function choosing a sub-pipeline from the conn (a "fork").

Construction and execution are separate phases. All combinators are pure
and copy-on-append, so a built Pipeline value can be shared and traversed
by any number of conns concurrently without synchronization.

	p := pipeline.New().
		Plug(addRequestID).
		Fork(routes).
		Plug(accessLog)
*/
package pipeline

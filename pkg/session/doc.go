/*
Package session serializes access to per-session conn data.

The HTTP adapter performs a load, runs the pipeline, and saves the session
back. Two concurrent requests for the same session would interleave those
read-modify-write cycles; wrapping the store in a Manager makes the whole
cycle exclusive per session ID, in-process via reference-counted mutexes
and across replicas via an optional DistributedLocker.
*/
package session

// package server implements the local dev stub backend: an in-memory
// implementation of the Trackflix REST contract used for development and
// demos when no real backend is reachable.
//
// Every catalog resource gets GET /<resource>, POST /<resource>,
// PUT /<resource>/{id}, and DELETE /<resource>/{id}; GET /health answers
// readiness probes. Entities are validated against the same schema rules
// the client enforces, so the stub rejects what a real backend would.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
package server

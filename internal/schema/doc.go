// package schema declares the per-resource field schemas and the pure
// functions operating on them: the field codec translating between wire
// entities and text edit buffers, and the validator producing per-field
// error messages.
//
// Everything in this package is deterministic and free of I/O. The api,
// store, and session packages build on it.
package schema

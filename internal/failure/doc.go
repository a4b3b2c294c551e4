// Package failure defines the error taxonomy shared by the sorting core and
// the CLI.
//
// Every error that crosses a component boundary is tagged with one of the
// sentinel markers below via Wrap, so callers can classify it with errors.Is
// without parsing messages. Configuration and destination-init failures end a
// run; metadata and placement failures are per file and never escape the
// traversal controller.
package failure

// Package driving provides interfaces exposed to external actors
// (primary/inbound ports): the CLI commands and the chat shell.
package driving

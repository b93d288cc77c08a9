// Package cli is the command-line surface of oktasync. It parses subcommands
// and their flags, wires the remote client, the local mirror and the sync
// engine together, and renders results as plain tables. All domain behavior
// lives in the packages below it.
package cli

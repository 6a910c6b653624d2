// Package cmd implements the command-line interface for schoolsum.
//
// This package provides the following commands:
//   - summary: Fetch calendar events for every configured child and deliver the report
//   - version: Display version information
//
// The summary command is the default command when no subcommand is specified;
// bare flags ("schoolsum --mode tomorrow") are routed to it as well.
package cmd

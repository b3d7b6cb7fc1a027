// Package cli provides the moodkeeper terminal client.
//
// It wires configuration, the record store backend, the local session and
// the page controllers into a cobra command tree. Every page of the
// journaling tool has a command: journal, goals, cycle, lockbox, calendar,
// weekly, dashboard and letter. The shell command runs the same commands
// in an interactive loop, which keeps the lockbox unlocked and the page
// caches warm between lines.
//
// Typical flow:
//
//	moodkeeper signup --email me@example.com
//	moodkeeper journal add --mood Happy --tags work,gym
//	moodkeeper weekly
//
// See App, NewRootCmd and runShell for details.
package cli

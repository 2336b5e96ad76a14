// Package terminal implements the portfolio terminal session: the boot
// sequence, the line history, the fixed command table and the timed
// effects those commands trigger.
//
// A Session is single-threaded. Every delay is a timer in the session's
// Scheduler, which runs on virtual time over an injected clock: nothing
// fires until the host calls Tick. Closing or tearing down a session
// cancels every pending timer, so no callback scheduled before the close
// can touch the session afterwards.
//
// Hosts that need real time and concurrent callers wrap the session in a
// Loop, which serialises requests through an inbox, arms a timer for the
// next due callback and publishes Snapshots as the session changes.
package terminal

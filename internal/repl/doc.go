// Package repl runs the terminal session as a line-oriented prompt on a
// plain terminal, for environments where the full-screen interface is not
// wanted. Session output is printed as it appears; the session runs in
// real time on a terminal.Loop.
package repl

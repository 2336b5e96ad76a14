// Package mcpserver exposes the terminal to MCP clients over stdio. Tools
// run scripted sessions in virtual time, so a transcript that would take
// seconds in a browser returns immediately and deterministically.
package mcpserver

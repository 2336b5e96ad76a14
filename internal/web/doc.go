// Package web serves the terminal over HTTP. It records page visits,
// drives one terminal session per websocket connection and gates the
// privileged page behind single-use tokens handed out by granted root
// redirects. Metrics are exposed on /metrics.
package web

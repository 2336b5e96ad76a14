package terminal

import "strings"

// DefaultSecretPhrase opens the terminal when typed while it is closed.
const DefaultSecretPhrase = "sudo nl"

// SecretPhrase watches keystrokes for a phrase and opens the host when it
// has been typed in full. Matching is case-insensitive; a keystroke that
// breaks the prefix starts the match over.
type SecretPhrase struct {
	phrase string
	typed  string
	host   SessionHost
}

// NewSecretPhrase returns a tracker that opens host on phrase.
func NewSecretPhrase(phrase string, host SessionHost) *SecretPhrase {
	return &SecretPhrase{phrase: strings.ToLower(phrase), host: host}
}

// Feed consumes one keystroke and reports whether it completed the phrase.
func (p *SecretPhrase) Feed(key string) bool {
	next := strings.ToLower(p.typed + key)
	if p.phrase == "" || !strings.HasPrefix(p.phrase, next) {
		p.typed = ""
		return false
	}
	if next != p.phrase {
		p.typed = next
		return false
	}
	p.typed = ""
	p.host.OpenTerminal()
	return true
}

// Reset forgets any partial match.
func (p *SecretPhrase) Reset() { p.typed = "" }

// Typed returns the partial match so far.
func (p *SecretPhrase) Typed() string { return p.typed }

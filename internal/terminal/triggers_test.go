package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type hostRecorder struct {
	opened   int
	elevated int
}

func (h *hostRecorder) OpenTerminal()     { h.opened++ }
func (h *hostRecorder) ActivateElevated() { h.elevated++ }

func feed(p *SecretPhrase, s string) (hits int) {
	for _, r := range s {
		if p.Feed(string(r)) {
			hits++
		}
	}
	return hits
}

func TestSecretPhrase(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  int
	}{
		{"exact", "sudo nl", 1},
		{"case insensitive", "SuDo NL", 1},
		{"noise before", "xxsudo nl", 1},
		{"broken prefix", "sudx nl", 0},
		{"twice", "sudo nlsudo nl", 2},
		{"partial", "sudo n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &hostRecorder{}
			p := NewSecretPhrase(DefaultSecretPhrase, host)
			assert.Equal(t, tt.want, feed(p, tt.typed))
			assert.Equal(t, tt.want, host.opened)
			assert.Zero(t, host.elevated)
		})
	}
}

func TestSecretPhrase_MismatchResetsToEmpty(t *testing.T) {
	host := &hostRecorder{}
	p := NewSecretPhrase("sudo nl", host)

	feed(p, "sud")
	assert.Equal(t, "sud", p.Typed())
	// "s" breaks the prefix and is dropped rather than starting a new match.
	feed(p, "s")
	assert.Empty(t, p.Typed())
	feed(p, "udo nl")
	assert.Zero(t, host.opened)

	feed(p, "su")
	p.Reset()
	assert.Empty(t, p.Typed())
}

func TestSecretPhrase_OpensSession(t *testing.T) {
	h := newHarness(t)
	p := NewSecretPhrase(DefaultSecretPhrase, h.s)
	feed(p, "sudo nl")
	assert.Equal(t, StateBooting, h.s.State())
}

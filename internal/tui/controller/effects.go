package controller

import (
	"fmt"

	"nlterm/internal/terminal"
	"nlterm/internal/tui/model"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWriteAll is swapped in tests.
var clipboardWriteAll = clipboard.WriteAll

// copyCmd writes text to the system clipboard off the update loop.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return model.ClipboardResultMsg{Text: text, Err: clipboardWriteAll(text)}
	}
}

// applyEffects turns the effects the session emitted into model changes.
// A terminal has no browser, so URLs are copied to the clipboard instead.
func applyEffects(m *model.Model) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range m.Effects.Drain() {
		switch eff.Kind {
		case model.EffectOpenURL:
			LogInfo(tuiSubsystem, "Opening %s", eff.Target)
			cmds = append(cmds,
				copyCmd(eff.Target),
				m.SetStatusMessage(fmt.Sprintf("%s (copied to clipboard)", eff.Target), model.StatusBarInfo, model.StatusMessageTimeout),
			)

		case model.EffectNavigate:
			cmds = append(cmds, navigate(m, eff.Target))

		case model.EffectSessionClosed:
			m.CurrentAppMode = model.ModeLanding
			m.Input.Reset()
			m.Input.Blur()
			m.Secret.Reset()
		}
	}
	return cmds
}

// navigate leaves the terminal for path. The privileged page is gated on
// the session store flag and falls back to the landing screen.
func navigate(m *model.Model, path string) tea.Cmd {
	if path != terminal.GodModePath {
		LogWarn(tuiSubsystem, "Ignoring navigation to unknown path %s", path)
		return nil
	}

	m.Session.Teardown()
	if v, _ := m.SessionStore.Get(terminal.KeyGodMode); v != "true" {
		LogWarn(tuiSubsystem, "Privileged page requested without the %s flag", terminal.KeyGodMode)
		m.CurrentAppMode = model.ModeLanding
		return m.SetStatusMessage("Access denied", model.StatusBarError, model.StatusMessageTimeout)
	}

	LogInfo(tuiSubsystem, "Entering %s", path)
	m.CurrentAppMode = model.ModeGodMode
	return m.SetStatusMessage("GODMODE unlocked", model.StatusBarSuccess, model.StatusMessageTimeout)
}

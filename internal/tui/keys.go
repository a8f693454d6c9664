package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	ClearPrompt key.Binding
	ToggleKey   key.Binding
	SwitchFocus key.Binding
	SaveKey     key.Binding
	LoadKey     key.Binding
	DeleteKey   key.Binding
	Copy        key.Binding
	Scroll      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	km := keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		ClearPrompt: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear prompt"),
		),
		ToggleKey: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "api key"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch field"),
		),
		SaveKey: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save key"),
		),
		LoadKey: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "load key"),
		),
		DeleteKey: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear key"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
	km.setKeyFieldVisible(false)
	return km
}

// setKeyFieldVisible enables the bindings that only apply to the key field
func (k *keyMap) setKeyFieldVisible(visible bool) {
	k.SwitchFocus.SetEnabled(visible)
	k.SaveKey.SetEnabled(visible)
	k.LoadKey.SetEnabled(visible)
	k.DeleteKey.SetEnabled(visible)
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Submit, k.ClearPrompt, k.ToggleKey, k.SwitchFocus,
		k.SaveKey, k.LoadKey, k.DeleteKey, k.Copy, k.Quit,
	}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.ClearPrompt, k.Copy, k.Scroll},
		{k.ToggleKey, k.SwitchFocus, k.SaveKey, k.LoadKey, k.DeleteKey},
		{k.Quit},
	}
}

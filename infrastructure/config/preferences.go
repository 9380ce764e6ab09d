package config

import "sync/atomic"

// Preferences holds the live editor settings. Reads are lock-free so
// proxies always see the latest reloaded values.
type Preferences struct {
	editor atomic.Pointer[EditorConfig]
}

// NewPreferences starts from the given settings
func NewPreferences(editor EditorConfig) *Preferences {
	p := &Preferences{}
	p.Store(editor)
	return p
}

// Store replaces the current settings
func (p *Preferences) Store(editor EditorConfig) {
	p.editor.Store(&editor)
}

// Editor returns a copy of the current settings
func (p *Preferences) Editor() EditorConfig {
	return *p.editor.Load()
}

// DefaultFigureSize is the size used when a script passes -1
func (p *Preferences) DefaultFigureSize() (int, int) {
	e := p.editor.Load()
	return e.FigureWidth, e.FigureHeight
}

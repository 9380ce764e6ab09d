package entities

// Property is one key/value entry of a node's property list.
// Keys are not unique within a list.
type Property struct {
	key   string
	value string
}

func NewProperty(key, value string) *Property {
	return &Property{key: key, value: value}
}

func (p *Property) Key() string   { return p.key }
func (p *Property) Value() string { return p.value }

// SetValue replaces the value and returns the previous one
func (p *Property) SetValue(value string) string {
	old := p.value
	p.value = value
	return old
}

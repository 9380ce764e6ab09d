package proxy

import (
	"context"

	"github.com/m-sergey/archi-scripting-plugin/application/commands"
	"github.com/m-sergey/archi-scripting-plugin/application/commands/bus"
	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
)

// properties returns the list behind the property API, or nil when the
// wrapped node has none.
func (o *object) properties() []*entities.Property {
	h := o.holder()
	if !h.SupportsProperties() {
		return nil
	}
	return h.Properties()
}

// PropertyKeys lists distinct keys in first-occurrence order
func (o *object) PropertyKeys() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range o.properties() {
		if !seen[p.Key()] {
			seen[p.Key()] = true
			out = append(out, p.Key())
		}
	}
	return out
}

// Property returns the value of the first entry with key
func (o *object) Property(key string) (string, bool) {
	for _, p := range o.properties() {
		if p.Key() == key {
			return p.Value(), true
		}
	}
	return "", false
}

// PropertyValues returns the values of every entry with key, in order
func (o *object) PropertyValues(key string) []string {
	var out []string
	for _, p := range o.properties() {
		if p.Key() == key {
			out = append(out, p.Value())
		}
	}
	return out
}

// SetProperty appends key=value when allowDuplicates is set or the key is
// new; otherwise it updates every entry with key in one unit of work.
// An empty key or a node without properties makes it a no-op.
func (o *object) SetProperty(ctx context.Context, key, value string, allowDuplicates bool) (Proxy, error) {
	h := o.holder()
	if key == "" || !h.SupportsProperties() {
		return o.self, nil
	}

	var matches []*entities.Property
	if !allowDuplicates {
		for _, p := range h.Properties() {
			if p.Key() == key {
				matches = append(matches, p)
			}
		}
	}
	if len(matches) == 0 {
		return o.self, o.exec(ctx, commands.NewAddPropertyCommand(h, key, value))
	}

	update := bus.NewCompoundCommand("Set property")
	for _, p := range matches {
		if p.Value() != value {
			update.Add(commands.NewSetPropertyValueCommand(p, value))
		}
	}
	if update.Len() == 0 {
		return o.self, nil
	}
	return o.self, o.exec(ctx, update)
}

// RemoveProperty removes every entry with key
func (o *object) RemoveProperty(ctx context.Context, key string) (Proxy, error) {
	return o.removeProperties(ctx, func(p *entities.Property) bool { return p.Key() == key })
}

// RemovePropertyValue removes every entry with key and value
func (o *object) RemovePropertyValue(ctx context.Context, key, value string) (Proxy, error) {
	return o.removeProperties(ctx, func(p *entities.Property) bool {
		return p.Key() == key && p.Value() == value
	})
}

func (o *object) removeProperties(ctx context.Context, match func(*entities.Property) bool) (Proxy, error) {
	var doomed []*entities.Property
	for _, p := range o.properties() {
		if match(p) {
			doomed = append(doomed, p)
		}
	}
	if len(doomed) == 0 {
		return o.self, nil
	}
	return o.self, o.exec(ctx, commands.NewRemovePropertiesCommand(o.holder(), doomed))
}

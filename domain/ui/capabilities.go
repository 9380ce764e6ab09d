// Package ui describes what the editor can render for each class of node.
// Diagram setters consult it to decide whether a feature applies.
package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/m-sergey/archi-scripting-plugin/domain/core/entities"
	"gopkg.in/yaml.v3"
)

// Feature names a diagram feature that can be hidden per class
type Feature string

const (
	FeatureGradient     Feature = "gradient"
	FeatureImageSource  Feature = "imageSource"
	FeatureImagePath    Feature = "imagePath"
	FeatureTextPosition Feature = "textPosition"
)

// Capabilities answers feature questions for a class of node
type Capabilities interface {
	// HasIcon reports whether figures of the class draw a type icon
	HasIcon(class string) bool
	// HasAlternateFigure reports whether the concept class has a second figure
	HasAlternateFigure(conceptClass string) bool
	// ShouldExposeFeature reports whether feature applies to the class
	ShouldExposeFeature(class string, feature Feature) bool
}

// ClassCapabilities is one row of the capability table
type ClassCapabilities struct {
	Icon            bool      `yaml:"icon" json:"icon"`
	AlternateFigure bool      `yaml:"alternateFigure" json:"alternateFigure"`
	Hidden          []Feature `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

func (c ClassCapabilities) hides(f Feature) bool {
	for _, h := range c.Hidden {
		if h == f {
			return true
		}
	}
	return false
}

// Table is a Capabilities backed by a per-class map. Classes absent from
// the table have no icon, no alternate figure and expose every feature.
type Table struct {
	classes map[string]ClassCapabilities
}

// elements drawn with a single figure only
var singleFigure = map[string]bool{
	"Junction":       true,
	"Grouping":       true,
	"Location":       true,
	"Path":           true,
	"Plateau":        true,
	"Gap":            true,
	"Meaning":        true,
	"Value":          true,
	"Contract":       true,
	"Representation": true,
}

// DefaultTable returns the built-in capability table
func DefaultTable() *Table {
	t := &Table{classes: make(map[string]ClassCapabilities)}

	for _, c := range entities.ElementClasses() {
		t.classes[c] = ClassCapabilities{Icon: true, AlternateFigure: !singleFigure[c]}
	}
	t.classes["Junction"] = ClassCapabilities{
		Hidden: []Feature{FeatureGradient, FeatureImageSource, FeatureImagePath, FeatureTextPosition},
	}

	t.classes[entities.ClassDiagramGroup] = ClassCapabilities{Hidden: []Feature{FeatureImageSource}}
	t.classes[entities.ClassDiagramNote] = ClassCapabilities{Hidden: []Feature{FeatureImageSource}}
	t.classes[entities.ClassDiagramReference] = ClassCapabilities{
		Icon:   true,
		Hidden: []Feature{FeatureImageSource, FeatureImagePath},
	}
	return t
}

// LoadTable reads YAML overrides (class -> capabilities) on top of the defaults
func LoadTable(r io.Reader) (*Table, error) {
	t := DefaultTable()

	var overrides map[string]ClassCapabilities
	if err := yaml.NewDecoder(r).Decode(&overrides); err != nil {
		if err == io.EOF {
			return t, nil
		}
		return nil, fmt.Errorf("failed to parse capability table: %w", err)
	}
	for class, caps := range overrides {
		t.classes[class] = caps
	}
	return t, nil
}

// Lookup returns the row for class
func (t *Table) Lookup(class string) (ClassCapabilities, bool) {
	c, ok := t.classes[class]
	return c, ok
}

// Classes lists the classes with an explicit row
func (t *Table) Classes() []string {
	out := make([]string, 0, len(t.classes))
	for c := range t.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (t *Table) HasIcon(class string) bool {
	return t.classes[class].Icon
}

func (t *Table) HasAlternateFigure(conceptClass string) bool {
	return t.classes[conceptClass].AlternateFigure
}

func (t *Table) ShouldExposeFeature(class string, feature Feature) bool {
	return !t.classes[class].hides(feature)
}

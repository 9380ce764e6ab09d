package entities

import (
	"sort"
	"strings"
	"unicode"
)

// Concrete class names of non-concept nodes
const (
	ClassModel                      = "ArchimateModel"
	ClassFolder                     = "Folder"
	ClassProfile                    = "Profile"
	ClassDiagramModel               = "ArchimateDiagramModel"
	ClassDiagramArchimateObject     = "DiagramModelArchimateObject"
	ClassDiagramNote                = "DiagramModelNote"
	ClassDiagramGroup               = "DiagramModelGroup"
	ClassDiagramReference           = "DiagramModelReference"
	ClassDiagramArchimateConnection = "DiagramModelArchimateConnection"
	ClassDiagramConnection          = "DiagramModelConnection"
)

// elementFolders maps every element class to the folder it is created in
var elementFolders = map[string]FolderType{
	"Resource":       FolderStrategy,
	"Capability":     FolderStrategy,
	"ValueStream":    FolderStrategy,
	"CourseOfAction": FolderStrategy,

	"BusinessActor":         FolderBusiness,
	"BusinessRole":          FolderBusiness,
	"BusinessCollaboration": FolderBusiness,
	"BusinessInterface":     FolderBusiness,
	"BusinessProcess":       FolderBusiness,
	"BusinessFunction":      FolderBusiness,
	"BusinessInteraction":   FolderBusiness,
	"BusinessEvent":         FolderBusiness,
	"BusinessService":       FolderBusiness,
	"BusinessObject":        FolderBusiness,
	"Contract":              FolderBusiness,
	"Representation":        FolderBusiness,
	"Product":               FolderBusiness,

	"ApplicationComponent":     FolderApplication,
	"ApplicationCollaboration": FolderApplication,
	"ApplicationInterface":     FolderApplication,
	"ApplicationFunction":      FolderApplication,
	"ApplicationInteraction":   FolderApplication,
	"ApplicationProcess":       FolderApplication,
	"ApplicationEvent":         FolderApplication,
	"ApplicationService":       FolderApplication,
	"DataObject":               FolderApplication,

	"Node":                    FolderTechnology,
	"Device":                  FolderTechnology,
	"SystemSoftware":          FolderTechnology,
	"TechnologyCollaboration": FolderTechnology,
	"TechnologyInterface":     FolderTechnology,
	"Path":                    FolderTechnology,
	"CommunicationNetwork":    FolderTechnology,
	"TechnologyFunction":      FolderTechnology,
	"TechnologyProcess":       FolderTechnology,
	"TechnologyInteraction":   FolderTechnology,
	"TechnologyEvent":         FolderTechnology,
	"TechnologyService":       FolderTechnology,
	"Artifact":                FolderTechnology,
	"Equipment":               FolderTechnology,
	"Facility":                FolderTechnology,
	"DistributionNetwork":     FolderTechnology,
	"Material":                FolderTechnology,

	"Stakeholder": FolderMotivation,
	"Driver":      FolderMotivation,
	"Assessment":  FolderMotivation,
	"Goal":        FolderMotivation,
	"Outcome":     FolderMotivation,
	"Principle":   FolderMotivation,
	"Requirement": FolderMotivation,
	"Constraint":  FolderMotivation,
	"Meaning":     FolderMotivation,
	"Value":       FolderMotivation,

	"WorkPackage":         FolderImplementationMigration,
	"Deliverable":         FolderImplementationMigration,
	"ImplementationEvent": FolderImplementationMigration,
	"Plateau":             FolderImplementationMigration,
	"Gap":                 FolderImplementationMigration,

	"Location": FolderOther,
	"Grouping": FolderOther,
	"Junction": FolderOther,
}

var relationshipClasses = map[string]bool{
	"AccessRelationship":         true,
	"AggregationRelationship":    true,
	"AssignmentRelationship":     true,
	"AssociationRelationship":    true,
	"CompositionRelationship":    true,
	"FlowRelationship":           true,
	"InfluenceRelationship":      true,
	"RealizationRelationship":    true,
	"ServingRelationship":        true,
	"SpecializationRelationship": true,
	"TriggeringRelationship":     true,
}

var diagramObjectClasses = map[string]bool{
	ClassDiagramArchimateObject: true,
	ClassDiagramNote:            true,
	ClassDiagramGroup:           true,
	ClassDiagramReference:       true,
}

// IsElementClass reports whether class names an element type
func IsElementClass(class string) bool {
	_, ok := elementFolders[class]
	return ok
}

// IsRelationshipClass reports whether class names a relationship type
func IsRelationshipClass(class string) bool {
	return relationshipClasses[class]
}

// IsDiagramObjectClass reports whether class names a diagram object type
func IsDiagramObjectClass(class string) bool {
	return diagramObjectClasses[class]
}

// FolderTypeFor returns the default folder for a concept class
func FolderTypeFor(class string) FolderType {
	if IsRelationshipClass(class) {
		return FolderRelations
	}
	if f, ok := elementFolders[class]; ok {
		return f
	}
	return FolderOther
}

// ElementClasses lists all element classes in name order
func ElementClasses() []string {
	out := make([]string, 0, len(elementFolders))
	for c := range elementFolders {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// RelationshipClasses lists all relationship classes in name order
func RelationshipClasses() []string {
	out := make([]string, 0, len(relationshipClasses))
	for c := range relationshipClasses {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// DiagramObjectClasses lists the diagram object classes in name order
func DiagramObjectClasses() []string {
	out := make([]string, 0, len(diagramObjectClasses))
	for c := range diagramObjectClasses {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// KebabCase converts a class name to its script form: BusinessActor -> business-actor
func KebabCase(class string) string {
	var b strings.Builder
	for i, r := range class {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ClassFromKebab converts a script type name back to a class name.
// It accepts every concept class plus the diagram classes.
func ClassFromKebab(kebab string) (string, bool) {
	class := camelCase(kebab)
	switch {
	case IsElementClass(class), IsRelationshipClass(class), IsDiagramObjectClass(class):
		return class, true
	}
	switch class {
	case ClassDiagramModel, ClassDiagramConnection, ClassDiagramArchimateConnection, ClassFolder, ClassModel:
		return class, true
	}
	return "", false
}

func camelCase(kebab string) string {
	var b strings.Builder
	upper := true
	for _, r := range kebab {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

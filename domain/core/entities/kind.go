package entities

// Kind is the structural tag of a node. Every node carries exactly one.
type Kind int

const (
	KindUnknown Kind = iota
	KindModel
	KindFolder
	KindElement
	KindRelationship
	KindDiagramModel
	KindDiagramObject
	KindDiagramConnection
	KindProfile
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindFolder:
		return "folder"
	case KindElement:
		return "element"
	case KindRelationship:
		return "relationship"
	case KindDiagramModel:
		return "diagram-model"
	case KindDiagramObject:
		return "diagram-object"
	case KindDiagramConnection:
		return "diagram-connection"
	case KindProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// IsConcept reports whether the kind is an element or a relationship
func (k Kind) IsConcept() bool {
	return k == KindElement || k == KindRelationship
}

// IsDiagramComponent reports whether the kind lives inside a diagram
func (k Kind) IsDiagramComponent() bool {
	return k == KindDiagramObject || k == KindDiagramConnection
}

// FolderType identifies the top-level folders every model owns
type FolderType int

const (
	FolderUser FolderType = iota
	FolderStrategy
	FolderBusiness
	FolderApplication
	FolderTechnology
	FolderMotivation
	FolderImplementationMigration
	FolderOther
	FolderRelations
	FolderDiagrams
)

var folderNames = map[FolderType]string{
	FolderStrategy:                "Strategy",
	FolderBusiness:                "Business",
	FolderApplication:             "Application",
	FolderTechnology:              "Technology & Physical",
	FolderMotivation:              "Motivation",
	FolderImplementationMigration: "Implementation & Migration",
	FolderOther:                   "Other",
	FolderRelations:               "Relations",
	FolderDiagrams:                "Views",
}

// DefaultName is the display name of a top-level folder
func (f FolderType) DefaultName() string {
	return folderNames[f]
}

// topLevelFolders is the creation order of the default folders
var topLevelFolders = []FolderType{
	FolderStrategy,
	FolderBusiness,
	FolderApplication,
	FolderTechnology,
	FolderMotivation,
	FolderImplementationMigration,
	FolderOther,
	FolderRelations,
	FolderDiagrams,
}

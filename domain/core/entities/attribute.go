package entities

import "github.com/m-sergey/archi-scripting-plugin/domain/core/valueobjects"

// Attribute names a typed slot on a node. Unset slots read as their default.
type Attribute int

const (
	AttrName Attribute = iota + 1
	AttrDocumentation
	AttrBounds
	AttrFillColor
	AttrAlpha
	AttrLineAlpha
	AttrGradient
	AttrFigureType
	AttrTextAlignment
	AttrTextPosition
	AttrIconVisible
	AttrImageSource
	AttrImagePosition
	AttrImagePath
	AttrProfile
	AttrConceptType
	AttrFolderType
)

// Text alignment values
const (
	TextAlignmentLeft   = 1
	TextAlignmentCenter = 2
	TextAlignmentRight  = 4
)

// Text position values
const (
	TextPositionTop    = 0
	TextPositionCentre = 1
	TextPositionBottom = 2
)

// Icon visibility values
const (
	IconVisibleIfNoImage = 0
	IconVisibleAlways    = 1
	IconVisibleNever     = 2
)

// Image source values
const (
	ImageSourceProfile = 0
	ImageSourceCustom  = 1
)

// Image position values, top-left through fill
const (
	ImagePositionTopLeft      = 0
	ImagePositionTopCentre    = 1
	ImagePositionTopRight     = 2
	ImagePositionMiddleLeft   = 3
	ImagePositionMiddleCentre = 4
	ImagePositionMiddleRight  = 5
	ImagePositionBottomLeft   = 6
	ImagePositionBottomCentre = 7
	ImagePositionBottomRight  = 8
	ImagePositionFill         = 9
)

// Gradient values; -1 is none
const (
	GradientNone   = -1
	GradientTop    = 0
	GradientLeft   = 1
	GradientRight  = 2
	GradientBottom = 3
)

const (
	AlphaMin = 0
	AlphaMax = 255
)

var attributeDefaults = map[Attribute]any{
	AttrName:          "",
	AttrDocumentation: "",
	AttrBounds:        valueobjects.DefaultBounds(),
	AttrFillColor:     "",
	AttrAlpha:         AlphaMax,
	AttrLineAlpha:     AlphaMax,
	AttrGradient:      GradientNone,
	AttrFigureType:    0,
	AttrTextAlignment: TextAlignmentCenter,
	AttrTextPosition:  TextPositionTop,
	AttrIconVisible:   IconVisibleIfNoImage,
	AttrImageSource:   ImageSourceProfile,
	AttrImagePosition: ImagePositionTopRight,
	AttrImagePath:     "",
	AttrProfile:       "",
	AttrConceptType:   "",
	AttrFolderType:    FolderUser,
}

// Default returns the value an unset attribute reads as
func (a Attribute) Default() any {
	return attributeDefaults[a]
}

func (a Attribute) String() string {
	switch a {
	case AttrName:
		return "name"
	case AttrDocumentation:
		return "documentation"
	case AttrBounds:
		return "bounds"
	case AttrFillColor:
		return "fillColor"
	case AttrAlpha:
		return "alpha"
	case AttrLineAlpha:
		return "lineAlpha"
	case AttrGradient:
		return "gradient"
	case AttrFigureType:
		return "figureType"
	case AttrTextAlignment:
		return "textAlignment"
	case AttrTextPosition:
		return "textPosition"
	case AttrIconVisible:
		return "iconVisible"
	case AttrImageSource:
		return "imageSource"
	case AttrImagePosition:
		return "imagePosition"
	case AttrImagePath:
		return "imagePath"
	case AttrProfile:
		return "profile"
	case AttrConceptType:
		return "conceptType"
	case AttrFolderType:
		return "folderType"
	default:
		return "unknown"
	}
}

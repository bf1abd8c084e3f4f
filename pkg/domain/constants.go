package domain

// Element kinds as they appear in the "type" field of serialized documents.
const (
	KindParagraph           = "paragraph"
	KindHeading             = "heading"
	KindBlockquote          = "blockquote"
	KindCode                = "code"
	KindLayout              = "layout"
	KindLayoutArea          = "layout-area"
	KindDivider             = "divider"
	KindOrderedList         = "ordered-list"
	KindUnorderedList       = "unordered-list"
	KindListItem            = "list-item"
	KindListItemContent     = "list-item-content"
	KindLink                = "link"
	KindRelationship        = "relationship"
	KindComponentBlock      = "component-block"
	KindComponentBlockProp  = "component-block-prop"
	KindComponentInlineProp = "component-inline-prop"
)

// Attribute keys shared by the codec and the prop injector.
const (
	KeyType     = "type"
	KeyChildren = "children"
	KeyText     = "text"
	KeyPropPath = "propPath"
)

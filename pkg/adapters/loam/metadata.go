package loam

// DocumentMeta is the frontmatter of a stored document.
// The document itself is the JSON body of the file.
type DocumentMeta struct {
	ID        string `json:"id" mapstructure:"id"`
	Title     string `json:"title,omitempty" mapstructure:"title"`
	UpdatedAt string `json:"updated_at,omitempty" mapstructure:"updated_at"`
}

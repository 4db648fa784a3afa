package parser

// Document is the root of a parsed OpenAPI 3.x document.
type Document struct {
	OpenAPI    string                  `yaml:"openapi" json:"openapi"`
	Info       *Info                   `yaml:"info,omitempty" json:"info,omitempty"`
	Servers    []*Server               `yaml:"servers,omitempty" json:"servers,omitempty"`
	Paths      *OrderedMap[*PathItem]  `yaml:"paths,omitempty" json:"paths,omitempty"`
	Components *Components             `yaml:"components,omitempty" json:"components,omitempty"`
	Tags       []*Tag                  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Info provides metadata about the API
type Info struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version" json:"version"`
}

// Server represents a server hosting the API
type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Tag adds metadata to a single tag used by operations
type Tag struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Components holds the reusable objects of the document.
// Only schemas participate in synthesis; the remaining component kinds are
// out of scope for generation.
type Components struct {
	Schemas *OrderedMap[*Schema] `yaml:"schemas,omitempty" json:"schemas,omitempty"`
}

// SchemaCount returns the number of named component schemas.
func (d *Document) SchemaCount() int {
	if d == nil || d.Components == nil {
		return 0
	}
	return d.Components.Schemas.Len()
}

// PathCount returns the number of declared paths.
func (d *Document) PathCount() int {
	if d == nil {
		return 0
	}
	return d.Paths.Len()
}

// OperationCount returns the number of declared operations across all paths.
func (d *Document) OperationCount() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, path := range d.Paths.Keys() {
		item, _ := d.Paths.Get(path)
		count += len(item.Operations())
	}
	return count
}

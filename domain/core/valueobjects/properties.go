package valueobjects

// Properties is a value object for the free-form attribute mapping carried by
// nodes and edges. Key order is irrelevant; values are host-defined and only
// rendered, never interpreted, by the editor core.
type Properties struct {
	values map[string]interface{}
}

// NewProperties creates a property set from a map; nil is treated as empty
func NewProperties(values map[string]interface{}) Properties {
	copied := make(map[string]interface{}, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Properties{values: copied}
}

// EmptyProperties creates an empty property set
func EmptyProperties() Properties {
	return Properties{values: make(map[string]interface{})}
}

// Get returns the value for a key
func (p Properties) Get(key string) (interface{}, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of properties
func (p Properties) Len() int {
	return len(p.values)
}

// ToMap returns a defensive copy of the underlying map
func (p Properties) ToMap() map[string]interface{} {
	copied := make(map[string]interface{}, len(p.values))
	for k, v := range p.values {
		copied[k] = v
	}
	return copied
}

// With returns a new property set with the given key set
func (p Properties) With(key string, value interface{}) Properties {
	copied := p.ToMap()
	copied[key] = value
	return Properties{values: copied}
}

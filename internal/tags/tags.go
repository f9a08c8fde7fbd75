// Package tags computes the ordered, priority-ranked set of image tags a
// variant publishes for a given triggering reference.
//
// The rule system is expressed as flat, declaratively-ordered tables of
// boolean-gated rules (see rules.go), evaluated independently and pure.
// Priority establishes which tag is authoritative where a registry
// convention allows only one floating marker such as "latest".
package tags

// Tag is one resolved image tag with its publishing priority.
type Tag struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Priority int    `json:"priority"`
}

// Set is the ordered list of tags for one variant, highest priority first.
// It is the only externally observable output of the tag engine.
type Set []Tag

// Names returns the tag names in priority order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.Name
	}
	return names
}

// Primary returns the highest-priority tag.
func (s Set) Primary() (Tag, bool) {
	if len(s) == 0 {
		return Tag{}, false
	}
	return s[0], true
}

// Contains reports whether the set includes a tag with the given name.
func (s Set) Contains(name string) bool {
	for _, t := range s {
		if t.Name == name {
			return true
		}
	}
	return false
}

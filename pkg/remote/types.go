package remote

// Ref is a reference to a registered watcher.
type Ref struct {
	// Type is the watcher type.
	Type string
	// ID is unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r Ref) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates Ref is valid.
func (r Ref) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// Meta provides metadata of a watcher.
type Meta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Info provides information of a watcher.
type Info struct {
	Ref  Ref
	Meta Meta
}

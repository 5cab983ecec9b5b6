package container

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is a declarative list of type-reference bindings, usually loaded
// from a YAML file:
//
//	bindings:
//	  - abstract: Logger
//	    concrete: FileLogger
//	    lifecycle: singleton
//	  - abstract: UserService       # self-binding, transient
type Manifest struct {
	Bindings []ManifestEntry `yaml:"bindings"`
}

// ManifestEntry is one binding of a Manifest.
type ManifestEntry struct {
	Abstract  string `yaml:"abstract"`
	Concrete  string `yaml:"concrete,omitempty"`
	Lifecycle string `yaml:"lifecycle,omitempty"`
}

// LoadManifest decodes a manifest and validates every entry.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("container: decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifestFile reads a manifest from path.
func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("container: open manifest: %w", err)
	}
	defer f.Close()
	return LoadManifest(f)
}

// Validate checks that every entry names an abstract and a known lifecycle.
func (m *Manifest) Validate() error {
	for i, e := range m.Bindings {
		if e.Abstract == "" {
			return fmt.Errorf("container: manifest entry %d has no abstract", i)
		}
		if _, err := ParseLifecycle(e.Lifecycle); err != nil {
			return errInvalidLifecycle(e.Abstract, e.Lifecycle)
		}
	}
	return nil
}

// Apply binds every entry into c, in file order.
func (m *Manifest) Apply(c *Container) error {
	for _, e := range m.Bindings {
		lifecycle, err := ParseLifecycle(e.Lifecycle)
		if err != nil {
			return errInvalidLifecycle(e.Abstract, e.Lifecycle)
		}
		var concrete Concrete
		if e.Concrete != "" {
			concrete = TypeRef(e.Concrete)
		}
		if err := c.Bind(e.Abstract, concrete, lifecycle); err != nil {
			return err
		}
	}
	return nil
}

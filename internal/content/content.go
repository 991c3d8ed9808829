// Package content serves the bundled portfolio data compiled into the binary.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/BradenHooton/portfolio/internal/models"
)

//go:embed portfolio.yaml
var bundled []byte

// Section names in export order.
const (
	SectionProfile        = "profile"
	SectionExperience     = "experience"
	SectionProjects       = "projects"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionPublications   = "publications"
	SectionTestimonials   = "testimonials"
	SectionAchievements   = "achievements"
)

var sectionOrder = []string{
	SectionProfile,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionCertifications,
	SectionPublications,
	SectionTestimonials,
	SectionAchievements,
}

var validate = validator.New()

// Catalog is a read-only view of one parsed Bundle. Returned slices are shared
// and must not be modified.
type Catalog struct {
	bundle Bundle
}

// Load parses the data compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(bundled)
}

// Parse decodes and validates a portfolio document. Unknown fields are rejected
// so a typo in the YAML fails at startup instead of silently dropping data.
func Parse(raw []byte) (*Catalog, error) {
	var b Bundle

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode portfolio data: %w", err)
	}

	if err := validate.Struct(b); err != nil {
		return nil, fmt.Errorf("invalid portfolio data: %w", err)
	}

	return &Catalog{bundle: b}, nil
}

func (c *Catalog) Bundle() Bundle {
	return c.bundle
}

func (c *Catalog) Profile() Profile {
	return c.bundle.Profile
}

func (c *Catalog) Certifications() []Certification {
	return c.bundle.Certifications
}

func (c *Catalog) Publications() []Publication {
	return c.bundle.Publications
}

// Sections lists the section names in export order.
func (c *Catalog) Sections() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Section returns one section by name, or models.ErrInvalidSection.
func (c *Catalog) Section(name string) (any, error) {
	switch strings.ToLower(name) {
	case SectionProfile:
		return c.bundle.Profile, nil
	case SectionExperience:
		return c.bundle.Experience, nil
	case SectionProjects:
		return c.bundle.Projects, nil
	case SectionSkills:
		return c.bundle.Skills, nil
	case SectionCertifications:
		return c.bundle.Certifications, nil
	case SectionPublications:
		return c.bundle.Publications, nil
	case SectionTestimonials:
		return c.bundle.Testimonials, nil
	case SectionAchievements:
		return c.bundle.Achievements, nil
	default:
		return nil, models.ErrInvalidSection
	}
}

// JSON renders the full bundle with two-space indentation.
func (c *Catalog) JSON() ([]byte, error) {
	return marshalIndent(c.bundle)
}

// ExportFilename is the attachment name for a JSON export made at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("portfolio-data-%s.json", now.UTC().Format(time.DateOnly))
}

// TypeScript renders the bundle as a TypeScript module with one exported
// constant per section.
func (c *Catalog) TypeScript(now time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString("// Profile Data Export\n")
	fmt.Fprintf(&sb, "// Generated: %s\n", now.UTC().Format("2006-01-02T15:04:05.000Z"))

	for _, name := range sectionOrder {
		section, err := c.Section(name)
		if err != nil {
			return "", err
		}
		data, err := marshalIndent(section)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", name, err)
		}
		fmt.Fprintf(&sb, "\nexport const %s = %s;\n", name, data)
	}

	return sb.String(), nil
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

package content

// Profile is the site owner's headline information.
type Profile struct {
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Title    string   `yaml:"title" json:"title" validate:"required"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
	Taglines []string `yaml:"taglines" json:"taglines"`
	Email    string   `yaml:"email" json:"email" validate:"required,email"`
	Location string   `yaml:"location" json:"location"`
	Bio      string   `yaml:"bio" json:"bio"`
	Avatar   string   `yaml:"avatar" json:"avatar"`
	Resume   string   `yaml:"resume" json:"resume"`
	Social   Social   `yaml:"social" json:"social"`
	Stats    Stats    `yaml:"stats" json:"stats"`
}

type Social struct {
	LinkedIn string `yaml:"linkedin" json:"linkedin" validate:"omitempty,url"`
	GitHub   string `yaml:"github" json:"github" validate:"omitempty,url"`
	Medium   string `yaml:"medium" json:"medium" validate:"omitempty,url"`
	Devpost  string `yaml:"devpost" json:"devpost" validate:"omitempty,url"`
	Twitter  string `yaml:"twitter" json:"twitter" validate:"omitempty,url"`
}

type Stats struct {
	Hackathons     int `yaml:"hackathons" json:"hackathons"`
	Projects       int `yaml:"projects" json:"projects"`
	Certifications int `yaml:"certifications" json:"certifications"`
	Publications   int `yaml:"publications" json:"publications"`
}

type Experience struct {
	ID           int                 `yaml:"id" json:"id"`
	Title        string              `yaml:"title" json:"title" validate:"required"`
	Company      string              `yaml:"company" json:"company" validate:"required"`
	Location     string              `yaml:"location" json:"location"`
	Period       string              `yaml:"period" json:"period"`
	Description  string              `yaml:"description" json:"description"`
	Technologies []string            `yaml:"technologies" json:"technologies"`
	Current      bool                `yaml:"current" json:"current"`
	Projects     []ExperienceProject `yaml:"projects,omitempty" json:"projects,omitempty" validate:"dive"`
	Highlights   []string            `yaml:"highlights,omitempty" json:"highlights,omitempty"`
}

// ExperienceProject is an engagement within a role.
type ExperienceProject struct {
	Name       string   `yaml:"name" json:"name" validate:"required"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Project struct {
	ID           int      `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Description  string   `yaml:"description" json:"description"`
	Image        string   `yaml:"image" json:"image"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	LiveURL      string   `yaml:"liveUrl" json:"liveUrl" validate:"omitempty,url"`
	GitHubURL    string   `yaml:"githubUrl" json:"githubUrl" validate:"omitempty,url"`
	Featured     bool     `yaml:"featured" json:"featured"`
	Award        string   `yaml:"award,omitempty" json:"award,omitempty"`
}

type Skills struct {
	Categories []SkillCategory `yaml:"categories" json:"categories" validate:"dive"`
}

type SkillCategory struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Icon   string   `yaml:"icon" json:"icon"`
	Skills []string `yaml:"skills" json:"skills"`
}

type Certification struct {
	ID     int    `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name" validate:"required"`
	Issuer string `yaml:"issuer" json:"issuer"`
	Icon   string `yaml:"icon" json:"icon"`
	Link   string `yaml:"link" json:"link" validate:"omitempty,url"`
	Date   string `yaml:"date" json:"date"`
}

type Publication struct {
	ID        int    `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title" validate:"required"`
	Publisher string `yaml:"publisher" json:"publisher"`
	Type      string `yaml:"type" json:"type"`
	Link      string `yaml:"link" json:"link" validate:"omitempty,url"`
	Year      int    `yaml:"year" json:"year"`
}

type Testimonial struct {
	ID     int    `yaml:"id" json:"id"`
	Quote  string `yaml:"quote" json:"quote" validate:"required"`
	Author string `yaml:"author" json:"author"`
	Role   string `yaml:"role" json:"role"`
}

type Achievement struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Event       string `yaml:"event" json:"event"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
}

// Bundle is the complete data set, in export order.
type Bundle struct {
	Profile        Profile         `yaml:"profile" json:"profile"`
	Experience     []Experience    `yaml:"experience" json:"experience" validate:"dive"`
	Projects       []Project       `yaml:"projects" json:"projects" validate:"dive"`
	Skills         Skills          `yaml:"skills" json:"skills"`
	Certifications []Certification `yaml:"certifications" json:"certifications" validate:"dive"`
	Publications   []Publication   `yaml:"publications" json:"publications" validate:"dive"`
	Testimonials   []Testimonial   `yaml:"testimonials" json:"testimonials" validate:"dive"`
	Achievements   []Achievement   `yaml:"achievements" json:"achievements" validate:"dive"`
}

package content

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var (
	ErrMissingName = errors.New("content: profile name is empty")
	ErrBadContact  = errors.New("content: malformed contact link")
)

type Hobby struct {
	Icon   string `yaml:"icon"`
	Label  string `yaml:"label"`
	Accent string `yaml:"accent"`
}

type Contact struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Project struct {
	Title   string `yaml:"title"`
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
}

// Profile is the static content shown around the card. The view renders it
// unchanged.
type Profile struct {
	Name         string    `yaml:"name"`
	Nickname     string    `yaml:"nickname"`
	Role         string    `yaml:"role"`
	Tagline      string    `yaml:"tagline"`
	Bio          string    `yaml:"bio"`
	BioAccent    string    `yaml:"bio_accent"`
	Skills       []string  `yaml:"skills"`
	Hobbies      []Hobby   `yaml:"hobbies"`
	Contacts     []Contact `yaml:"contacts"`
	Stats        []Stat    `yaml:"stats"`
	Featured     Project   `yaml:"featured"`
	Recognitions []string  `yaml:"recognitions"`
	Avatar       string    `yaml:"avatar"`
	Footer       string    `yaml:"footer"`
}

func Default() *Profile {
	return &Profile{
		Name:      "Ada M. Example",
		Nickname:  "Ada",
		Role:      "Business Analyst",
		Tagline:   "Hi, I'm",
		Bio:       "Aspiring business analyst. I turn data into stories and chaos into strategy.",
		BioAccent: "Slightly addicted to gacha games, and I love building cool websites.",
		Skills:    []string{"Project Management", "Business Analytics", "Web Development", "Problem Solving"},
		Hobbies: []Hobby{
			{Icon: "🎮", Label: "Gacha RPGs", Accent: "#c084fc"},
			{Icon: "🎮", Label: "Mobile MOBAs", Accent: "#60a5fa"},
			{Icon: "🐈", Label: "Cat Enthusiast", Accent: "#f472b6"},
			{Icon: "</>", Label: "Web Development", Accent: "#4ade80"},
			{Icon: "📷", Label: "Photography", Accent: "#facc15"},
			{Icon: "♫", Label: "K-Pop & K-Drama", Accent: "#f87171"},
		},
		Contacts: []Contact{
			{Label: "Get in Touch", URL: "mailto:ada@example.com"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/example"},
		},
		Stats: []Stat{
			{Label: "Education", Value: "BSIT"},
			{Label: "University", Value: "State U"},
		},
		Featured: Project{
			Title:   "Featured Project",
			Name:    "Evalu8",
			Summary: "Faculty Evaluation System",
		},
		Recognitions: []string{
			"International Research Conference on IT Education 2025",
			"IT Research Summit 2024",
		},
		Footer: "© 2025 Ada • Made with Go & Bubble Tea",
	}
}

// Load reads a profile from YAML. Fields missing from the file keep their
// default values.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", path, err)
	}
	return p, nil
}

func Save(path string, p *Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrMissingName)
	}
	for _, c := range p.Contacts {
		u, err := url.Parse(c.URL)
		if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrBadContact, c.Label, c.URL))
		}
	}
	return errors.Join(errs...)
}

// AvatarGlyph returns the text placeholder shown instead of the avatar
// image, or "" when the image is present.
func (p *Profile) AvatarGlyph() string {
	if p.Avatar != "" {
		if _, err := os.Stat(p.Avatar); err == nil {
			return ""
		}
	}
	name := p.Nickname
	if name == "" {
		name = p.Name
	}
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// Primary returns the first mailto contact address, or the first contact URL
// when there is no mail link.
func (p *Profile) Primary() string {
	for _, c := range p.Contacts {
		if addr, ok := strings.CutPrefix(c.URL, "mailto:"); ok {
			return addr
		}
	}
	if len(p.Contacts) > 0 {
		return p.Contacts[0].URL
	}
	return ""
}

// DisplayName is the short name used in the hero greeting.
func (p *Profile) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Name
}

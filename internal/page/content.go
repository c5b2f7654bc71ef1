package page

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Content is the copy shown by the sections.
type Content struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title"`
	Nav      []Link       `yaml:"nav"`
	Hero     Hero         `yaml:"hero"`
	About    About        `yaml:"about"`
	Skills   []SkillGroup `yaml:"skills"`
	Projects []Project    `yaml:"projects"`
	Contact  Contact      `yaml:"contact"`
	Footer   Footer       `yaml:"footer"`
}

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Hero struct {
	Greeting string `yaml:"greeting"`
	Headline string `yaml:"headline"`
	Summary  string `yaml:"summary"`
	Actions  []Link `yaml:"actions"`
}

type About struct {
	Body       string   `yaml:"body"`
	Highlights []string `yaml:"highlights"`

	// HTML is Body rendered from Markdown.
	HTML template.HTML `yaml:"-"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Link        string   `yaml:"link"`
	Repo        string   `yaml:"repo"`
}

type Contact struct {
	Intro    string `yaml:"intro"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	Socials  []Link `yaml:"socials"`
}

type Footer struct {
	Note  string `yaml:"note"`
	Links []Link `yaml:"links"`
}

// DefaultContent returns the embedded site copy.
func DefaultContent() (*Content, error) {
	return ParseContent(bytes.NewReader(defaultContent))
}

// ParseContent decodes YAML site copy, validates it and renders the About
// body. Unknown keys are rejected so typos do not silently drop copy.
func ParseContent(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Typographer))
	var buf bytes.Buffer
	if err := md.Convert([]byte(c.About.Body), &buf); err != nil {
		return nil, fmt.Errorf("render about: %w", err)
	}
	// goldmark escapes raw HTML unless WithUnsafe is set.
	c.About.HTML = template.HTML(buf.String())
	return &c, nil
}

func (c *Content) validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	for i, p := range c.Projects {
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
	}
	for i, g := range c.Skills {
		if g.Category == "" {
			errs = append(errs, fmt.Errorf("skills[%d]: category is required", i))
		}
	}
	links := append(append(append([]Link{}, c.Nav...), c.Hero.Actions...), c.Contact.Socials...)
	for _, l := range append(links, c.Footer.Links...) {
		if l.Href == "" {
			errs = append(errs, fmt.Errorf("link %q: href is required", l.Label))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid content: %w", errors.Join(errs...))
	}
	return nil
}

package models

// MenuCategory is one tab of the menu page.
type MenuCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

type MenuItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       string   `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	Image       string   `json:"image,omitempty" yaml:"image"`
	Featured    bool     `json:"featured" yaml:"featured"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

func (m MenuItem) FilterCategory() string { return m.Category }
func (m MenuItem) FilterTags() []string   { return m.Tags }
func (m MenuItem) IsFeatured() bool       { return m.Featured }

func (m MenuItem) SearchFields() []string {
	return append([]string{m.Name, m.Description, m.Category}, m.Tags...)
}

// GalleryCategory is one filter button of the gallery page.
type GalleryCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

type GalleryImage struct {
	ID        string `json:"id" yaml:"id"`
	Src       string `json:"src" yaml:"src"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail"`
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	Alt       string `json:"alt" yaml:"alt"`
	Category  string `json:"category" yaml:"category"`
}

func (g GalleryImage) FilterCategory() string { return g.Category }
func (g GalleryImage) FilterTags() []string   { return nil }
func (g GalleryImage) SearchFields() []string { return []string{g.Alt, g.Category} }

// Social holds optional profile links of a team member.
type Social struct {
	Instagram string `json:"instagram,omitempty" yaml:"instagram"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin"`
}

type TeamMember struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Role       string `json:"role" yaml:"role"`
	Image      string `json:"image" yaml:"image"`
	Bio        string `json:"bio" yaml:"bio"`
	Specialty  string `json:"specialty" yaml:"specialty"`
	Experience string `json:"experience" yaml:"experience"`
	Social     Social `json:"social" yaml:"social"`
}

func (t TeamMember) FilterCategory() string { return t.Role }
func (t TeamMember) FilterTags() []string   { return nil }

func (t TeamMember) SearchFields() []string {
	return []string{t.Name, t.Role, t.Specialty, t.Bio}
}

type Testimonial struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Image  string `json:"image" yaml:"image"`
	Rating int    `json:"rating" yaml:"rating"`
	Text   string `json:"text" yaml:"text"`
	Date   string `json:"date" yaml:"date"`
}

func (t Testimonial) FilterCategory() string { return t.Role }
func (t Testimonial) FilterTags() []string   { return nil }
func (t Testimonial) SearchFields() []string { return []string{t.Name, t.Role, t.Text} }

// HeroSlide is one frame of the home page slider.
type HeroSlide struct {
	ID               string `json:"id" yaml:"id"`
	Image            string `json:"image" yaml:"image"`
	Title            string `json:"title" yaml:"title"`
	Subtitle         string `json:"subtitle" yaml:"subtitle"`
	Description      string `json:"description" yaml:"description"`
	CTAText          string `json:"ctaText" yaml:"ctaText"`
	CTALink          string `json:"ctaLink" yaml:"ctaLink"`
	CTASecondary     string `json:"ctaSecondary,omitempty" yaml:"ctaSecondary"`
	CTASecondaryLink string `json:"ctaSecondaryLink,omitempty" yaml:"ctaSecondaryLink"`
}

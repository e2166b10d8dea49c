package domain

import "context"

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Profile struct {
	Name       string `json:"name"`
	Initials   string `json:"initials"`
	Headline   string `json:"headline"`
	Location   string `json:"location"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
	University string `json:"university"`
	Graduation string `json:"graduation"`
	Intro      string `json:"intro"`
	Stats      []Stat `json:"stats"`
}

type Education struct {
	Degree     string   `json:"degree"`
	School     string   `json:"school"`
	Expected   string   `json:"expected"`
	GPA        string   `json:"gpa"`
	Coursework []string `json:"coursework"`
	Thesis     string   `json:"thesis"`
}

type SkillGroup struct {
	Title      string   `json:"title"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
}

type Experience struct {
	Role           string   `json:"role"`
	Organization   string   `json:"organization"`
	Period         string   `json:"period"`
	Highlights     []string `json:"highlights"`
	KeyAchievement string   `json:"key_achievement,omitempty"`
	Technologies   []string `json:"technologies,omitempty"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Tech         []string `json:"tech"`
	Features     []string `json:"features"`
	Achievements string   `json:"achievements"`
}

type Award struct {
	Title        string `json:"title"`
	Year         string `json:"year"`
	Organization string `json:"organization"`
}

type CareerInterests struct {
	Status            string   `json:"status"`
	PreferredRoles    []string `json:"preferred_roles"`
	PreferredLocation string   `json:"preferred_location"`
	Availability      string   `json:"availability"`
}

// Proficiency is a self-assessed level between 0 and 1.
type Proficiency struct {
	Skill string  `json:"skill"`
	Level float64 `json:"level"`
}

func (p Proficiency) Percent() int {
	switch {
	case p.Level <= 0:
		return 0
	case p.Level >= 1:
		return 100
	}
	return int(p.Level*100 + 0.5)
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Portfolio is the read-only content shown on the page.
type Portfolio struct {
	Profile         Profile         `json:"profile"`
	Education       Education       `json:"education"`
	TechnicalSkills []SkillGroup    `json:"technical_skills"`
	SoftSkills      []string        `json:"soft_skills"`
	Leadership      []Experience    `json:"leadership"`
	Technical       []Experience    `json:"technical"`
	Projects        []Project       `json:"projects"`
	Awards          []Award         `json:"awards"`
	Certifications  []string        `json:"certifications"`
	Career          CareerInterests `json:"career"`
	QuickLinks      []Link          `json:"quick_links"`
	Proficiencies   []Proficiency   `json:"proficiencies"`
	BuiltWith       []string        `json:"built_with"`
	SiteFeatures    []string        `json:"site_features"`
	LastUpdated     string          `json:"last_updated"`
}

type ContentRepository interface {
	GetPortfolio(ctx context.Context) (*Portfolio, error)
}

type PortfolioUsecase interface {
	GetPortfolio(ctx context.Context) (*Portfolio, error)
}

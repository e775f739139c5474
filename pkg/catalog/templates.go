package catalog

import "github.com/kittclouds/galaxymap/pkg/mindmap"

// TemplateCategory groups templates in the template gallery.
type TemplateCategory string

const (
	CategoryProject       TemplateCategory = "project"
	CategoryLearning      TemplateCategory = "learning"
	CategoryBrainstorming TemplateCategory = "brainstorming"
	CategoryResearch      TemplateCategory = "research"
)

// Template is a canned set of galaxies and notes used to seed a mind map.
type Template struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Category    TemplateCategory          `json:"category"`
	Galaxies    []mindmap.Galaxy          `json:"galaxies"`
	GalaxyNotes map[string][]mindmap.Note `json:"galaxyNotes"`
}

// Templates returns the whole gallery.
func Templates() []Template {
	return []Template{projectPlanning(), learningPath(), brainstorming()}
}

// TemplateByID returns one template by id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// TemplatesByCategory returns the templates of one category.
func TemplatesByCategory(c TemplateCategory) []Template {
	var out []Template
	for _, t := range Templates() {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

func galaxy(id, name string, theme mindmap.Theme, x, y float64, noteCount int, tags ...string) mindmap.Galaxy {
	return mindmap.Galaxy{
		ID:        id,
		Position:  mindmap.Position{X: x, Y: y},
		Name:      name,
		Theme:     theme,
		NoteCount: noteCount,
		Tags:      tags,
	}
}

type noteSpec struct {
	id       string
	x, y     float64
	title    string
	content  string
	noteType mindmap.NoteType
	priority mindmap.Priority
	tags     []string
}

func notes(galaxyID string, theme mindmap.Theme, specs ...noteSpec) []mindmap.Note {
	out := make([]mindmap.Note, len(specs))
	for i, s := range specs {
		out[i] = mindmap.Note{
			ID:       s.id,
			Position: mindmap.Position{X: s.x, Y: s.y},
			Title:    s.title,
			Content:  s.content,
			Theme:    theme,
			NoteType: s.noteType,
			Tags:     s.tags,
			Priority: s.priority,
			GalaxyID: galaxyID,
		}
	}
	return out
}

func projectPlanning() Template {
	return Template{
		ID:          "project-planning",
		Name:        "Project Planning",
		Description: "Organize project phases, tasks, and deadlines",
		Category:    CategoryProject,
		Galaxies: []mindmap.Galaxy{
			galaxy("galaxy-planning", "Planning", mindmap.ThemeRoyal, 200, 150, 3, "project", "planning"),
			galaxy("galaxy-execution", "Execution", mindmap.ThemeStellar, 450, 150, 4, "project", "development"),
			galaxy("galaxy-review", "Review & Testing", mindmap.ThemeCosmic, 325, 350, 2, "project", "qa"),
		},
		GalaxyNotes: map[string][]mindmap.Note{
			"galaxy-planning": notes("galaxy-planning", mindmap.ThemeRoyal,
				noteSpec{"plan-1", 100, 100, "Project Requirements", "Define scope, objectives, and success criteria", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"requirements", "planning"}},
				noteSpec{"plan-2", 300, 150, "Timeline & Milestones", "Key deadlines and project phases", mindmap.NoteTypeDeadline, mindmap.PriorityHigh, []string{"timeline", "milestones"}},
				noteSpec{"plan-3", 200, 300, "Resource Allocation", "Team members, budget, and tools needed", mindmap.NoteTypeResource, mindmap.PriorityMedium, []string{"resources", "budget"}},
			),
			"galaxy-execution": notes("galaxy-execution", mindmap.ThemeStellar,
				noteSpec{"exec-1", 150, 100, "Development Setup", "Environment configuration and initial setup", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"setup", "development"}},
				noteSpec{"exec-2", 350, 120, "Core Features", "Implementation of main functionality", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"features", "development"}},
				noteSpec{"exec-3", 100, 280, "API Integration", "Connect external services and APIs", mindmap.NoteTypeTask, mindmap.PriorityMedium, []string{"api", "integration"}},
				noteSpec{"exec-4", 400, 300, "Documentation", "User guides and technical documentation", mindmap.NoteTypeResource, mindmap.PriorityMedium, []string{"documentation", "guides"}},
			),
			"galaxy-review": notes("galaxy-review", mindmap.ThemeCosmic,
				noteSpec{"review-1", 200, 150, "Testing Strategy", "Unit tests, integration tests, and user acceptance testing", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"testing", "qa"}},
				noteSpec{"review-2", 350, 250, "Deployment Plan", "Production deployment and rollback strategy", mindmap.NoteTypeDeadline, mindmap.PriorityHigh, []string{"deployment", "production"}},
			),
		},
	}
}

func learningPath() Template {
	return Template{
		ID:          "learning-path",
		Name:        "Learning Path",
		Description: "Structure learning goals and track progress",
		Category:    CategoryLearning,
		Galaxies: []mindmap.Galaxy{
			galaxy("galaxy-fundamentals", "Fundamentals", mindmap.ThemeCosmic, 200, 200, 3, "learning", "basics"),
			galaxy("galaxy-advanced", "Advanced Topics", mindmap.ThemeNebula, 500, 200, 3, "learning", "advanced"),
			galaxy("galaxy-practice", "Practice Projects", mindmap.ThemeStellar, 350, 400, 2, "learning", "practice"),
		},
		GalaxyNotes: map[string][]mindmap.Note{
			"galaxy-fundamentals": notes("galaxy-fundamentals", mindmap.ThemeCosmic,
				noteSpec{"fund-1", 150, 100, "Core Concepts", "Basic principles and terminology", mindmap.NoteTypeIdea, mindmap.PriorityHigh, []string{"concepts", "basics"}},
				noteSpec{"fund-2", 350, 150, "Learning Resources", "Books, courses, and tutorials", mindmap.NoteTypeResource, mindmap.PriorityMedium, []string{"resources", "materials"}},
				noteSpec{"fund-3", 250, 300, "Practice Exercises", "Hands-on exercises to reinforce learning", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"practice", "exercises"}},
			),
			"galaxy-advanced": notes("galaxy-advanced", mindmap.ThemeNebula,
				noteSpec{"adv-1", 200, 120, "Advanced Patterns", "Complex patterns and best practices", mindmap.NoteTypeIdea, mindmap.PriorityMedium, []string{"patterns", "advanced"}},
				noteSpec{"adv-2", 400, 180, "Real-world Applications", "Industry use cases and examples", mindmap.NoteTypeResource, mindmap.PriorityMedium, []string{"examples", "industry"}},
				noteSpec{"adv-3", 300, 320, "Certification Goals", "Professional certifications to pursue", mindmap.NoteTypeDeadline, mindmap.PriorityLow, []string{"certification", "goals"}},
			),
			"galaxy-practice": notes("galaxy-practice", mindmap.ThemeStellar,
				noteSpec{"prac-1", 200, 150, "Portfolio Project", "Showcase project for portfolio", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"portfolio", "project"}},
				noteSpec{"prac-2", 350, 250, "Open Source Contribution", "Contribute to open source projects", mindmap.NoteTypeIdea, mindmap.PriorityMedium, []string{"opensource", "contribution"}},
			),
		},
	}
}

func brainstorming() Template {
	return Template{
		ID:          "brainstorming",
		Name:        "Brainstorming Session",
		Description: "Capture and organize creative ideas",
		Category:    CategoryBrainstorming,
		Galaxies: []mindmap.Galaxy{
			galaxy("galaxy-ideas", "Raw Ideas", mindmap.ThemeNebula, 250, 150, 4, "brainstorming", "ideas"),
			galaxy("galaxy-refined", "Refined Concepts", mindmap.ThemeRoyal, 450, 300, 2, "brainstorming", "refined"),
			galaxy("galaxy-action", "Action Items", mindmap.ThemeStellar, 150, 400, 3, "brainstorming", "action"),
		},
		GalaxyNotes: map[string][]mindmap.Note{
			"galaxy-ideas": notes("galaxy-ideas", mindmap.ThemeNebula,
				noteSpec{"idea-1", 100, 100, "Initial Concept", "First thoughts and rough ideas", mindmap.NoteTypeIdea, mindmap.PriorityMedium, []string{"initial", "concept"}},
				noteSpec{"idea-2", 300, 120, "Alternative Approach", "Different way to solve the problem", mindmap.NoteTypeIdea, mindmap.PriorityMedium, []string{"alternative", "approach"}},
				noteSpec{"idea-3", 200, 280, "Inspiration Sources", "External references and inspiration", mindmap.NoteTypeResource, mindmap.PriorityLow, []string{"inspiration", "references"}},
				noteSpec{"idea-4", 400, 250, "Wild Ideas", "Creative, out-of-the-box thinking", mindmap.NoteTypeIdea, mindmap.PriorityLow, []string{"creative", "wild"}},
			),
			"galaxy-refined": notes("galaxy-refined", mindmap.ThemeRoyal,
				noteSpec{"refined-1", 200, 150, "Feasible Solution", "Practical and implementable approach", mindmap.NoteTypeIdea, mindmap.PriorityHigh, []string{"feasible", "solution"}},
				noteSpec{"refined-2", 350, 250, "MVP Features", "Minimum viable product features", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"mvp", "features"}},
			),
			"galaxy-action": notes("galaxy-action", mindmap.ThemeStellar,
				noteSpec{"action-1", 150, 100, "Research Phase", "Investigate technical feasibility", mindmap.NoteTypeTask, mindmap.PriorityHigh, []string{"research", "feasibility"}},
				noteSpec{"action-2", 300, 180, "Prototype Development", "Build initial prototype", mindmap.NoteTypeTask, mindmap.PriorityMedium, []string{"prototype", "development"}},
				noteSpec{"action-3", 200, 320, "Stakeholder Review", "Present ideas to stakeholders", mindmap.NoteTypeDeadline, mindmap.PriorityMedium, []string{"review", "presentation"}},
			),
		},
	}
}

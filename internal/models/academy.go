package model

// QuickTip conseil rapide de l'Academy
type QuickTip struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Content    string `json:"content" yaml:"content"`
	Category   string `json:"category" yaml:"category"`
	Icon       string `json:"icon" yaml:"icon"`
	ReadTime   int    `json:"readTime" yaml:"readTime"`
	IsFeatured bool   `json:"isFeatured" yaml:"isFeatured"`
	Situation  string `json:"forSituation,omitempty" yaml:"forSituation"`
	Order      int    `json:"order" yaml:"order"`
}

// TipCategory catégorie de filtre des conseils
type TipCategory struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
}

// Scenario mise en situation avec actions rapides
type Scenario struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Situation    string   `json:"situation" yaml:"situation"`
	QuickActions []string `json:"quickActions" yaml:"quickActions"`
	Icon         string   `json:"icon" yaml:"icon"`
}

// ProtectiveMove technique d'autodéfense
type ProtectiveMove struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Steps       []string `json:"steps" yaml:"steps"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	Icon        string   `json:"icon" yaml:"icon"`
}

// Checklist liste de vérification de sécurité
type Checklist struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Items       []string `json:"items" yaml:"items"`
	Category    string   `json:"category" yaml:"category"`
	Icon        string   `json:"icon" yaml:"icon"`
}

// Course cours de l'Academy
type Course struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	Category         string   `json:"category" yaml:"category"`
	Level            string   `json:"level" yaml:"level"`
	Duration         int      `json:"duration" yaml:"duration"`
	LessonCount      int      `json:"lessonCount" yaml:"lessonCount"`
	Thumbnail        string   `json:"thumbnail" yaml:"thumbnail"`
	Instructor       string   `json:"instructor,omitempty" yaml:"instructor"`
	StudentsEnrolled int      `json:"studentsEnrolled" yaml:"studentsEnrolled"`
	Rating           float64  `json:"rating" yaml:"rating"`
	Reviews          int      `json:"reviews" yaml:"reviews"`
	Lessons          []Lesson `json:"lessons,omitempty" yaml:"lessons"`
}

type Lesson struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Duration int    `json:"duration" yaml:"duration"`
	IsFree   bool   `json:"isFree" yaml:"isFree"`
}

// ChecklistProgress progression d'un utilisateur sur une checklist
type ChecklistProgress struct {
	ChecklistID string `json:"checklistId"`
	Checked     []int  `json:"checked"`
	Total       int    `json:"total"`
	Completed   bool   `json:"completed"`
}

// AcademyFilter filtres des listes de l'Academy
type AcademyFilter struct {
	Category   string
	Situation  string
	Difficulty string
	Level      string
	Featured   *bool
}

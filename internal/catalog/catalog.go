// Package catalog sert le contenu statique de l'Academy et de l'Armory
// (conseils, scénarios, mouvements, checklists, cours, produits). Les données
// sont embarquées en YAML et décodées une seule fois.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var files = []string{"data/academy.yaml", "data/armory.yaml"}

type Catalog struct {
	TipCategories []model.TipCategory    `yaml:"tipCategories"`
	QuickTips     []model.QuickTip       `yaml:"quickTips"`
	Scenarios     []model.Scenario       `yaml:"scenarios"`
	Moves         []model.ProtectiveMove `yaml:"protectiveMoves"`
	Checklists    []model.Checklist      `yaml:"checklists"`
	Courses       []model.Course         `yaml:"courses"`
	Categories    []model.GadgetCategory `yaml:"categories"`
	PriceRanges   []model.PriceRange     `yaml:"priceRanges"`
	Products      []model.Product        `yaml:"products"`
}

var (
	once       sync.Once
	defaultCat *Catalog
	defaultErr error
)

// Default retourne le catalogue embarqué. Les données sont validées par les
// tests du paquet, une erreur ici est donc fatale.
func Default() *Catalog {
	once.Do(func() {
		defaultCat, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: %v", defaultErr))
	}
	return defaultCat
}

// Load décode et valide les fichiers embarqués
func Load() (*Catalog, error) {
	c := &Catalog{}
	for _, name := range files {
		raw, err := dataFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	seen := map[string]bool{}
	check := func(kind, id string) error {
		key := kind + "/" + id
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if seen[key] {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[key] = true
		return nil
	}

	for _, t := range c.QuickTips {
		if err := check("tip", t.ID); err != nil {
			return err
		}
	}
	for _, m := range c.Moves {
		if err := check("move", m.ID); err != nil {
			return err
		}
	}
	for _, l := range c.Checklists {
		if err := check("checklist", l.ID); err != nil {
			return err
		}
		if len(l.Items) == 0 {
			return fmt.Errorf("checklist %q has no items", l.ID)
		}
	}
	for _, s := range c.Scenarios {
		if err := check("scenario", s.ID); err != nil {
			return err
		}
	}
	for _, co := range c.Courses {
		if err := check("course", co.ID); err != nil {
			return err
		}
	}
	categories := map[string]bool{}
	for _, g := range c.Categories {
		if err := check("category", g.ID); err != nil {
			return err
		}
		categories[g.ID] = true
	}
	for _, p := range c.Products {
		if err := check("product", p.ID); err != nil {
			return err
		}
		if !categories[p.Category] {
			return fmt.Errorf("product %q has unknown category %q", p.ID, p.Category)
		}
		if _, ok := ParsePrice(p.Price); !ok {
			return fmt.Errorf("product %q has unparsable price %q", p.ID, p.Price)
		}
	}
	return nil
}

// Tips filtre les conseils; les conseils mis en avant passent en premier,
// puis l'ordre d'affichage
func (c *Catalog) Tips(f model.AcademyFilter) []model.QuickTip {
	out := []model.QuickTip{}
	for _, t := range c.QuickTips {
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		if f.Situation != "" && t.Situation != f.Situation {
			continue
		}
		if f.Featured != nil && *f.Featured && !t.IsFeatured {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFeatured != out[j].IsFeatured {
			return out[i].IsFeatured
		}
		return out[i].Order < out[j].Order
	})
	return out
}

func (c *Catalog) Tip(id string) (model.QuickTip, bool) {
	for _, t := range c.QuickTips {
		if t.ID == id {
			return t, true
		}
	}
	return model.QuickTip{}, false
}

func (c *Catalog) ListMoves(difficulty string) []model.ProtectiveMove {
	out := []model.ProtectiveMove{}
	for _, m := range c.Moves {
		if difficulty == "" || strings.EqualFold(m.Difficulty, difficulty) {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) Move(id string) (model.ProtectiveMove, bool) {
	for _, m := range c.Moves {
		if m.ID == id {
			return m, true
		}
	}
	return model.ProtectiveMove{}, false
}

func (c *Catalog) ListChecklists(category string) []model.Checklist {
	out := []model.Checklist{}
	for _, l := range c.Checklists {
		if category == "" || strings.EqualFold(l.Category, category) {
			out = append(out, l)
		}
	}
	return out
}

func (c *Catalog) Checklist(id string) (model.Checklist, bool) {
	for _, l := range c.Checklists {
		if l.ID == id {
			return l, true
		}
	}
	return model.Checklist{}, false
}

// ChecklistSizes nombre d'éléments par checklist
func (c *Catalog) ChecklistSizes() map[string]int {
	sizes := make(map[string]int, len(c.Checklists))
	for _, l := range c.Checklists {
		sizes[l.ID] = len(l.Items)
	}
	return sizes
}

func (c *Catalog) ListScenarios(situation string) []model.Scenario {
	out := []model.Scenario{}
	for _, s := range c.Scenarios {
		if situation == "" || s.Situation == situation {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) ListCourses(category, level string) []model.Course {
	out := []model.Course{}
	for _, co := range c.Courses {
		if category != "" && !strings.EqualFold(co.Category, category) {
			continue
		}
		if level != "" && !strings.EqualFold(co.Level, level) {
			continue
		}
		out = append(out, co)
	}
	return out
}

func (c *Catalog) Course(id string) (model.Course, bool) {
	for _, co := range c.Courses {
		if co.ID == id {
			return co, true
		}
	}
	return model.Course{}, false
}

// Title retourne le titre affichable d'un élément enregistrable du catalogue
func (c *Catalog) Title(itemType model.ItemType, id string) (string, bool) {
	switch itemType {
	case model.ItemTip:
		if t, ok := c.Tip(id); ok {
			return t.Title, true
		}
	case model.ItemMove:
		if m, ok := c.Move(id); ok {
			return m.Title, true
		}
	case model.ItemProduct:
		if p, ok := c.Product(id); ok {
			return p.Name, true
		}
	}
	return "", false
}

package catalog

import (
	"strconv"
	"strings"
	"unicode"

	model "github.com/harshitSingh1/SentinelShe/internal/models"
)

// FeaturedMinRating note minimale d'un produit mis en avant
const (
	FeaturedMinRating = 4.5
	FeaturedLimit     = 8
)

// ParsePrice extrait le montant entier d'un prix affiché ("₹1,999" -> 1999,
// "Free" -> 0)
func ParsePrice(display string) (int, bool) {
	if strings.EqualFold(strings.TrimSpace(display), "free") {
		return 0, true
	}
	var digits strings.Builder
	for _, r := range display {
		if r == '.' {
			break
		}
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// InPriceRange teste price contre "0-500", "500-1000", "1000-2000" ou "2000+".
// Les bornes basses sont incluses, les bornes hautes exclues.
func InPriceRange(price int, rng string) bool {
	if lo, ok := strings.CutSuffix(rng, "+"); ok {
		lower, err := strconv.Atoi(lo)
		return err == nil && price >= lower
	}
	lo, hi, ok := strings.Cut(rng, "-")
	if !ok {
		return false
	}
	lower, err1 := strconv.Atoi(lo)
	upper, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil {
		return false
	}
	return price >= lower && price < upper
}

// CategoriesWithCounts catégories avec le nombre réel de produits
func (c *Catalog) CategoriesWithCounts() []model.GadgetCategory {
	counts := map[string]int{}
	for _, p := range c.Products {
		counts[p.Category]++
	}
	out := make([]model.GadgetCategory, len(c.Categories))
	for i, g := range c.Categories {
		g.Count = counts[g.ID]
		out[i] = g
	}
	return out
}

// ListProducts applique les filtres non vides de f
func (c *Catalog) ListProducts(f model.ProductFilter) []model.Product {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []model.Product{}
	for _, p := range c.Products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Legality != "" && !strings.EqualFold(p.Legality, f.Legality) {
			continue
		}
		if f.PriceRange != "" {
			price, ok := ParsePrice(p.Price)
			if !ok || !InPriceRange(price, f.PriceRange) {
				continue
			}
		}
		if f.BestFor != "" && !contains(p.BestFor, f.BestFor) {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Featured produits notés au moins FeaturedMinRating, FeaturedLimit au plus
func (c *Catalog) Featured() []model.Product {
	out := []model.Product{}
	for _, p := range c.Products {
		if p.Rating >= FeaturedMinRating {
			out = append(out, p)
			if len(out) == FeaturedLimit {
				break
			}
		}
	}
	return out
}

func (c *Catalog) Product(id string) (model.Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func matches(p model.Product, q string) bool {
	for _, field := range []string{p.Name, p.Description, p.Brand} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

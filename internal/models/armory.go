package model

// GadgetCategory catégorie de produits de l'Armory
type GadgetCategory struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
	Count       int    `json:"count" yaml:"-"`
}

// Product produit de sécurité
type Product struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Category        string            `json:"category" yaml:"category"`
	Brand           string            `json:"brand" yaml:"brand"`
	Description     string            `json:"description" yaml:"description"`
	LongDescription string            `json:"longDescription,omitempty" yaml:"longDescription"`
	Price           string            `json:"price" yaml:"price"`
	PriceRange      string            `json:"priceRange" yaml:"priceRange"`
	ImageURL        string            `json:"imageUrl" yaml:"imageUrl"`
	Rating          float64           `json:"rating" yaml:"rating"`
	Reviews         int               `json:"reviews" yaml:"reviews"`
	Features        []string          `json:"features" yaml:"features"`
	Legality        string            `json:"legality" yaml:"legality"`
	PlatformLinks   map[string]string `json:"platformLinks" yaml:"platformLinks"`
	Weight          string            `json:"weight,omitempty" yaml:"weight"`
	Battery         string            `json:"battery,omitempty" yaml:"battery"`
	Colors          []string          `json:"color,omitempty" yaml:"color"`
	BestFor         []string          `json:"bestFor" yaml:"bestFor"`
}

// PriceRange tranche de prix filtrable
type PriceRange struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ProductFilter filtres de la liste des produits
type ProductFilter struct {
	Category   string
	Legality   string
	PriceRange string
	Query      string
	BestFor    string
}

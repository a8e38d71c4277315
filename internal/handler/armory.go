package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/harshitSingh1/SentinelShe/internal/catalog"
	model "github.com/harshitSingh1/SentinelShe/internal/models"
	"github.com/harshitSingh1/SentinelShe/internal/utils"
)

// GetCategories catégories avec le nombre de produits de chacune
func GetCategories(w http.ResponseWriter, r *http.Request) {
	c := catalog.Default()
	utils.Success(w, map[string]interface{}{
		"categories":  c.CategoriesWithCounts(),
		"priceRanges": c.PriceRanges,
	})
}

func GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := catalog.Default().ListProducts(model.ProductFilter{
		Category:   q.Get("category"),
		Legality:   q.Get("legality"),
		PriceRange: q.Get("price"),
		Query:      q.Get("q"),
		BestFor:    q.Get("bestFor"),
	})
	utils.Success(w, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

func GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, catalog.Default().Featured())
}

func GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := catalog.Default().Product(mux.Vars(r)["id"])
	if !ok {
		utils.ErrorSimple(w, http.StatusNotFound, "product not found")
		return
	}
	utils.Success(w, product)
}

// SaveProduct enregistre ou retire un produit (products_saved)
var SaveProduct = toggleCatalogItem(model.ItemProduct, func(id string) bool {
	_, ok := catalog.Default().Product(id)
	return ok
}, "product not found")

package models

import (
	"sort"
	"strings"
	"time"
)

// Listing is one marketplace item record. Listings are created through the
// posting form and never edited or deleted by this app.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	SellerID    string    `json:"sellerId"`
	Timestamp   time.Time `json:"timestamp"`
}

type CreateListingRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

func (r *CreateListingRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	}
	if strings.TrimSpace(r.Category) == "" {
		errors["category"] = "Category is required"
	}
	if r.Price <= 0 {
		errors["price"] = "Price must be greater than zero."
	}
	if strings.TrimSpace(r.Description) == "" {
		errors["description"] = "Description is required"
	}

	return errors
}

// CategoryAll is the filter sentinel meaning "no filter".
const CategoryAll = "All"

// Listing categories shown in the posting form.
var ListingCategories = []string{
	"Vehicles",
	"Electronics",
	"Furniture",
	"Clothing",
	"Books",
	"Property",
	"Services",
	"Other",
}

// SortNewestFirst orders listings by timestamp descending in place. A zero
// timestamp sorts last, so records missing a creation time end up at the
// bottom of the feed rather than on top. The sort is stable so records with
// equal timestamps keep their relative order.
func SortNewestFirst(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Timestamp.After(listings[j].Timestamp)
	})
}

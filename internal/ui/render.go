// Package ui projects the listing store into markup: category filtering, the
// card and empty-state templates, price/date/seller formatting, and the
// toast payloads the page renders.
package ui

import (
	"html/template"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

// DefaultImageURL is the placeholder shown for listings without an image and
// for images that fail to load.
const DefaultImageURL = "https://placehold.co/192x192/0E7490/ffffff?text=No+Image"

const descriptionLimit = 80

// FilterByCategory returns the listings whose category equals filter, or the
// full set unchanged when filter is the "All" sentinel. Relative order is
// preserved; the input is already sorted upstream.
func FilterByCategory(listings []models.Listing, filter string) []models.Listing {
	if filter == models.CategoryAll {
		return listings
	}
	out := make([]models.Listing, 0)
	for _, l := range listings {
		if l.Category == filter {
			out = append(out, l)
		}
	}
	return out
}

// ImageSource picks the card image URL, falling back to the placeholder when
// the listing has no image.
func ImageSource(l models.Listing) string {
	if isBlank(l.ImageURL) {
		return DefaultImageURL
	}
	return l.ImageURL
}

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders a price in Indian Rupees with en-IN grouping and
// decimal rules, e.g. 1234.5 becomes "₹1,234.50".
func FormatPrice(price float64) string {
	return inrPrinter.Sprintf("₹%v",
		number.Decimal(price, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// SellerLabel returns the first 8 characters of the seller id followed by an
// ellipsis. Partial, not anonymous: enough to tell sellers apart without
// printing the whole identifier.
func SellerLabel(sellerID string) string {
	if len(sellerID) > 8 {
		sellerID = sellerID[:8]
	}
	return sellerID + "..."
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

const cardsTemplate = `{{- if .Listings -}}
{{- range .Listings}}
<div class="listing-item bg-white rounded-xl shadow-lg overflow-hidden border border-gray-100 hover:shadow-xl">
    <div class="h-48 overflow-hidden bg-gray-200">
        <img src="{{imageSource .}}" alt="{{.Title}}" class="w-full h-full object-cover transition duration-300"
            onerror="this.onerror=null; this.src='{{placeholder}}'; this.style.filter='grayscale(100%)'; this.classList.remove('object-cover'); this.classList.add('object-contain', 'p-4')">
    </div>
    <div class="p-6">
        <span class="inline-block text-xs font-semibold px-2 py-1 rounded-full text-teal-700 bg-teal-100 mb-2">{{.Category}}</span>
        <h3 class="text-xl font-bold text-gray-800 mb-2">{{.Title}}</h3>
        <p class="text-2xl font-extrabold text-teal-600 mb-2">{{formatPrice .Price}}</p>
        <p class="text-sm text-gray-500 mb-4 truncate">{{shorten .Description}}</p>
        <p class="text-xs text-gray-400 mb-4">Posted: {{postDate .Timestamp}} by {{sellerLabel .SellerID}}</p>
        <button class="block w-full text-center py-2 bg-teal-500 text-white rounded-lg hover:bg-teal-600 transition duration-200">Contact Seller</button>
    </div>
</div>
{{- end}}
{{- else -}}
<div class="col-span-full text-center py-12 text-gray-500">No listings found for the category: {{.Filter}}. Be the first to post!</div>
{{- end -}}`

// Renderer turns a listing set into card markup. It does no sorting and no
// pagination; the set arrives already ordered.
type Renderer struct {
	cards *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"imageSource": ImageSource,
		"formatPrice": FormatPrice,
		"sellerLabel": SellerLabel,
		"placeholder": func() string { return DefaultImageURL },
		"shorten": func(s string) string {
			return truncate(s, descriptionLimit)
		},
		"postDate": func(t time.Time) string {
			return t.Format("2/1/2006")
		},
	}
	return &Renderer{
		cards: template.Must(template.New("cards").Funcs(funcs).Parse(cardsTemplate)),
	}
}

// Listings writes the cards for the filtered subset, or the empty-state
// message naming the active filter.
func (r *Renderer) Listings(w io.Writer, listings []models.Listing, filter string) error {
	return r.cards.Execute(w, struct {
		Listings []models.Listing
		Filter   string
	}{
		Listings: FilterByCategory(listings, filter),
		Filter:   filter,
	})
}

func isBlank(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

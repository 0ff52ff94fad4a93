package catalogsource

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Content API response types
// ---------------------------------------------------------------------------

// cmsListResponse wraps every list endpoint
type cmsListResponse[T any] struct {
	Results []T `json:"results"`
	Total   int `json:"total_results_size"`
}

// cmsLink is a document link; the API sends either a bare uid string or an
// object with uid and name
type cmsLink struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both link shapes
func (l *cmsLink) UnmarshalJSON(data []byte) error {
	var uid string
	if err := json.Unmarshal(data, &uid); err == nil {
		l.UID = uid
		return nil
	}
	type plain cmsLink
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = cmsLink(p)
	return nil
}

// cmsImage is an image field; the API sends either a URL string or an
// object with a url
type cmsImage struct {
	URL string `json:"url"`
}

// UnmarshalJSON accepts both image shapes
func (i *cmsImage) UnmarshalJSON(data []byte) error {
	var u string
	if err := json.Unmarshal(data, &u); err == nil {
		i.URL = u
		return nil
	}
	type plain cmsImage
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = cmsImage(p)
	return nil
}

// cmsPercent is an alcohol content value sent as a number (5.2) or as a
// string with an optional percent sign ("5.2%", "5,2 %")
type cmsPercent struct {
	Value *decimal.Decimal
}

// UnmarshalJSON accepts numbers, numeric strings, and null
func (p *cmsPercent) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		p.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = string(data)
	}
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		p.Value = nil
		return nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	p.Value = &d
	return nil
}

// cmsCategory is a category document
type cmsCategory struct {
	UID           string   `json:"uid"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Image         cmsImage `json:"image"`
	Featured      bool     `json:"featured"`
	Subcategories []string `json:"subcategories"`
}

// cmsProduct is a product document. Availability arrives as in_stock, as
// available, or only as a stock count depending on the content model.
type cmsProduct struct {
	UID            string           `json:"uid"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	OriginalPrice  *decimal.Decimal `json:"original_price"`
	Category       cmsLink          `json:"category"`
	Subcategory    string           `json:"subcategory"`
	Brand          string           `json:"brand"`
	Origin         string           `json:"origin"`
	Volume         string           `json:"volume"`
	AlcoholContent cmsPercent       `json:"alcohol_content"`
	Image          cmsImage         `json:"image"`
	InStock        *bool            `json:"in_stock"`
	Available      *bool            `json:"available"`
	Stock          *int             `json:"stock"`
	Featured       bool             `json:"featured"`
	Rating         decimal.Decimal  `json:"rating"`
	ReviewCount    int              `json:"review_count"`
	Tags           []string         `json:"tags"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CategoryNames maps category ids to their Norwegian display names.
var CategoryNames = map[string]string{
	"grass-cutting":    "Klippe gress",
	"weed-removal":     "Fjerne ugress",
	"bark-soil":        "Legge bark eller ny jord",
	"hedge-cutting":    "Klippe hekk",
	"garbage-disposal": "Kjøre søppel",
	"pressure-washing": "Spyle",
	"cleaning":         "Rengjøre",
	"window-washing":   "Vaske vinduer",
	"heavy-lifting":    "Bærejobb",
	"painting":         "Male",
	"staining":         "Beise",
	"repair":           "Reparere",
	"organizing":       "Rydde",
	"car-washing":      "Vaske bilen",
	"snow-shoveling":   "Snømåking",
	"moving-help":      "Hjelpe med flytting",
	"salt-sand":        "Strø med sand / salt",
	"pet-care":         "Dyrepass",
	"other":            "Annet",
}

// CategoryName returns the display name for a category id.
func CategoryName(id string) string {
	if name, ok := CategoryNames[id]; ok {
		return name
	}
	return "Annet"
}

// CategoryList normalizes the two historical category shapes: old jobs
// carry a single string, newer jobs an array. Both decode into an array.
type CategoryList []string

func (c *CategoryList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*c = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return errors.New("kategorier må være en streng eller en liste av strenger")
	}
	if one == "" {
		*c = CategoryList{}
		return nil
	}
	*c = CategoryList{one}
	return nil
}

func (c CategoryList) Contains(id string) bool {
	for _, cat := range c {
		if cat == id {
			return true
		}
	}
	return false
}

func (c CategoryList) Value() (driver.Value, error) {
	return json.Marshal([]string(c))
}

func (c *CategoryList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return c.UnmarshalJSON(v)
	case string:
		return c.UnmarshalJSON([]byte(v))
	case nil:
		*c = CategoryList{}
		return nil
	default:
		return fmt.Errorf("unsupported category value: %T", value)
	}
}

const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"

	PricingHourly = "hourly"
	PricingFixed  = "fixed"
)

type Job struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Title         string          `json:"title" validate:"required"`
	Categories    CategoryList    `gorm:"type:json" json:"categories"`
	Description   string          `gorm:"type:text" json:"description" validate:"required"`
	Price         int             `json:"price" validate:"required,min=0"`
	PricingType   string          `gorm:"default:fixed" json:"pricingType"` // hourly | fixed
	Location      string          `json:"location" validate:"required"`
	Duration      string          `json:"duration"`
	Requirements  json.RawMessage `gorm:"type:json" json:"requirements"`
	Images        json.RawMessage `gorm:"type:json" json:"images"`
	Status        string          `gorm:"default:active" json:"status"`
	UserID        uint            `json:"userId"`
	User          User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProviderName  string          `json:"providerName"` // snapshot ved opprettelse
	ProviderType  string          `json:"providerType"`
	AverageRating float64         `json:"averageRating"`
	ReviewCount   int             `gorm:"default:0" json:"reviewCount"`
	Longitude     float64         `json:"longitude"`
	Latitude      float64         `json:"latitude"`
}

func (j *Job) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}

	if len(j.Categories) == 0 {
		return errors.New("du må velge minst én kategori")
	}
	for _, cat := range j.Categories {
		if _, ok := CategoryNames[cat]; !ok {
			return fmt.Errorf("ukjent kategori: %s", cat)
		}
	}

	if j.PricingType != "" && j.PricingType != PricingHourly && j.PricingType != PricingFixed {
		return errors.New("pristype må være hourly eller fixed")
	}
	return nil
}

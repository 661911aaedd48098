package listing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryJobs    Category = "jobs"
	CategoryHousing Category = "housing"
	CategoryRides   Category = "rides"
	CategoryGigs    Category = "gigs"
)

var Categories = []Category{CategoryJobs, CategoryHousing, CategoryRides, CategoryGigs}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if Category(s) == c {
			return true
		}
	}
	return false
}

type Listing struct {
	ID            string
	OwnerID       string
	Category      Category
	Title         string
	Description   string
	CompanyName   *string
	ContactMethod string
	ContactValue  string
	City          *string
	PayRate       *decimal.Decimal
	Currency      *string
	Shift         *string
	IsPublic      bool
	IsActive      bool
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

// Application is a worker's application to a listing
type Application struct {
	ID        string
	UserID    string
	ListingID string
	Message   string
	CreatedAt time.Time
}

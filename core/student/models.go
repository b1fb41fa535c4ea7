package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
)

type (
	// Pin records one item a student pinned: a scraped deadline or one of
	// their personal events. Title and Date back the digest identity; Key
	// backs exclusion from recommendations.
	Pin struct {
		Key   string    `json:"key"`
		Title string    `json:"title"`
		Date  time.Time `json:"date"`
	}

	Student struct {
		ID               int       `json:"id"`
		Name             string    `json:"name"`
		Email            string    `json:"email"`
		LeadDays         int       `json:"lead_days"`
		PinnedCategories []string  `json:"pinned_categories"`
		Pins             []Pin     `json:"pins"`
		CreatedAt        time.Time `json:"created_at"` // UTC
		UpdatedAt        time.Time `json:"updated_at"` // UTC
	}

	NewStudent struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		LeadDays int    `json:"lead_days" validate:"leaddays"`
	}

	UpdatePrefs struct {
		LeadDays         *int     `json:"lead_days" validate:"omitempty,leaddays"`
		PinnedCategories []string `json:"pinned_categories"`
	}
)

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

func (up *UpdatePrefs) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

// PinnedKeySet is the set of pin keys, used to exclude already-pinned
// items from recommendations.
func (s Student) PinnedKeySet() deadline.KeySet {
	set := make(deadline.KeySet, len(s.Pins))
	for _, p := range s.Pins {
		set[p.Key] = true
	}
	return set
}

// PinnedIdentitySet is the set of digest-matching identities derived from
// the student's pins.
func (s Student) PinnedIdentitySet() deadline.IdentitySet {
	set := make(deadline.IdentitySet, len(s.Pins))
	for _, p := range s.Pins {
		set[deadline.Identity(p.Title, p.Date)] = true
	}
	return set
}

func (s Student) PinnedCategorySet() deadline.CategorySet {
	set := make(deadline.CategorySet, len(s.PinnedCategories))
	for _, c := range s.PinnedCategories {
		set[deadline.Category(c)] = true
	}
	return set
}

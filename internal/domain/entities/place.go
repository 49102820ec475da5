package entities

import (
	"strings"

	apperrors "github.com/stayhive/backend/pkg/errors"
)

const titleMaxLen = 100

// Place represents a rental listing. It references its owner by id and holds
// id-valued collections for its reviews (owned, cascade-deleted with the
// place) and amenities (shared many-to-many association).
type Place struct {
	Base
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Price       float64  `json:"price" db:"price"`
	Latitude    float64  `json:"latitude" db:"latitude"`
	Longitude   float64  `json:"longitude" db:"longitude"`
	OwnerID     string   `json:"owner_id" db:"owner_id"`
	AmenityIDs  []string `json:"amenity_ids" db:"-"`
	ReviewIDs   []string `json:"review_ids" db:"-"`
}

// NewPlace validates every field before any assignment.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (*Place, error) {
	cleanTitle, err := requiredString("title", title, titleMaxLen)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateLatitude(latitude); err != nil {
		return nil, err
	}
	if err := validateLongitude(longitude); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.NewValidationError("owner_id", "cannot be empty")
	}

	return &Place{
		Base:        newBase(),
		Title:       cleanTitle,
		Description: strings.TrimSpace(description),
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
	}, nil
}

func validatePrice(price float64) error {
	if price <= 0 {
		return apperrors.NewValidationError("price", "must be a positive number")
	}
	return nil
}

func validateLatitude(latitude float64) error {
	if latitude < -90 || latitude > 90 {
		return apperrors.NewValidationError("latitude", "must be between -90 and 90")
	}
	return nil
}

func validateLongitude(longitude float64) error {
	if longitude < -180 || longitude > 180 {
		return apperrors.NewValidationError("longitude", "must be between -180 and 180")
	}
	return nil
}

// SetTitle validates and updates the title.
func (p *Place) SetTitle(value string) error {
	title, err := requiredString("title", value, titleMaxLen)
	if err != nil {
		return err
	}
	p.Title = title
	p.touch()
	return nil
}

// SetDescription updates the optional description.
func (p *Place) SetDescription(value string) error {
	p.Description = strings.TrimSpace(value)
	p.touch()
	return nil
}

// SetPrice validates and updates the nightly price.
func (p *Place) SetPrice(value float64) error {
	if err := validatePrice(value); err != nil {
		return err
	}
	p.Price = value
	p.touch()
	return nil
}

// SetLatitude validates and updates the latitude.
func (p *Place) SetLatitude(value float64) error {
	if err := validateLatitude(value); err != nil {
		return err
	}
	p.Latitude = value
	p.touch()
	return nil
}

// SetLongitude validates and updates the longitude.
func (p *Place) SetLongitude(value float64) error {
	if err := validateLongitude(value); err != nil {
		return err
	}
	p.Longitude = value
	p.touch()
	return nil
}

// SetOwnerID reassigns the owning user. Resolution of the id is the
// caller's responsibility.
func (p *Place) SetOwnerID(value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError("owner_id", "cannot be empty")
	}
	p.OwnerID = value
	p.touch()
	return nil
}

// AddReview appends a review id to the owned collection.
func (p *Place) AddReview(reviewID string) {
	p.ReviewIDs = append(p.ReviewIDs, reviewID)
	p.touch()
}

// RemoveReview drops a review id from the owned collection.
func (p *Place) RemoveReview(reviewID string) {
	for i, id := range p.ReviewIDs {
		if id == reviewID {
			p.ReviewIDs = append(p.ReviewIDs[:i], p.ReviewIDs[i+1:]...)
			p.touch()
			return
		}
	}
}

// AddAmenity links an amenity to the place.
func (p *Place) AddAmenity(amenityID string) {
	p.AmenityIDs = append(p.AmenityIDs, amenityID)
	p.touch()
}

// HasAmenity reports whether the amenity is already linked.
func (p *Place) HasAmenity(amenityID string) bool {
	for _, id := range p.AmenityIDs {
		if id == amenityID {
			return true
		}
	}
	return false
}

// Apply validates the whole field map before mutating anything. Unknown and
// immutable fields are ignored; the review and amenity collections are
// mutated only through their dedicated operations.
func (p *Place) Apply(fields map[string]any) error {
	var setters []func() error

	if v, ok, err := StringField(fields, "title"); err != nil {
		return err
	} else if ok {
		if _, err := requiredString("title", v, titleMaxLen); err != nil {
			return err
		}
		setters = append(setters, func() error { return p.SetTitle(v) })
	}
	if v, ok, err := StringField(fields, "description"); err != nil {
		return err
	} else if ok {
		setters = append(setters, func() error { return p.SetDescription(v) })
	}
	if v, ok, err := FloatField(fields, "price"); err != nil {
		return err
	} else if ok {
		if err := validatePrice(v); err != nil {
			return err
		}
		setters = append(setters, func() error { return p.SetPrice(v) })
	}
	if v, ok, err := FloatField(fields, "latitude"); err != nil {
		return err
	} else if ok {
		if err := validateLatitude(v); err != nil {
			return err
		}
		setters = append(setters, func() error { return p.SetLatitude(v) })
	}
	if v, ok, err := FloatField(fields, "longitude"); err != nil {
		return err
	} else if ok {
		if err := validateLongitude(v); err != nil {
			return err
		}
		setters = append(setters, func() error { return p.SetLongitude(v) })
	}
	if v, ok, err := StringField(fields, "owner_id"); err != nil {
		return err
	} else if ok {
		if strings.TrimSpace(v) == "" {
			return apperrors.NewValidationError("owner_id", "cannot be empty")
		}
		setters = append(setters, func() error { return p.SetOwnerID(v) })
	}

	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}
	p.touch()
	return nil
}

// Clone returns an independent copy, including the id collections.
func (p *Place) Clone() Entity {
	clone := *p
	clone.AmenityIDs = append([]string(nil), p.AmenityIDs...)
	clone.ReviewIDs = append([]string(nil), p.ReviewIDs...)
	return &clone
}

// Attribute exposes lookup fields for repository attribute queries.
func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "owner_id":
		return p.OwnerID, true
	default:
		return nil, false
	}
}

package entities

import (
	"strings"

	apperrors "github.com/stayhive/backend/pkg/errors"
)

const reviewTextMaxLen = 255

// Review is a rated comment a user leaves on a place. Author and place are
// held as id-valued references; the place owns the review's lifecycle.
type Review struct {
	Base
	Text    string `json:"text" db:"text"`
	Rating  int    `json:"rating" db:"rating"`
	UserID  string `json:"user_id" db:"user_id"`
	PlaceID string `json:"place_id" db:"place_id"`
}

// NewReview validates every field before any assignment.
func NewReview(text string, rating int, userID, placeID string) (*Review, error) {
	clean, err := requiredString("text", text, reviewTextMaxLen)
	if err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user_id", "cannot be empty")
	}
	if strings.TrimSpace(placeID) == "" {
		return nil, apperrors.NewValidationError("place_id", "cannot be empty")
	}

	return &Review{
		Base:    newBase(),
		Text:    clean,
		Rating:  rating,
		UserID:  userID,
		PlaceID: placeID,
	}, nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewValidationError("rating", "must be an integer between 1 and 5")
	}
	return nil
}

// SetText validates and updates the review text.
func (r *Review) SetText(value string) error {
	clean, err := requiredString("text", value, reviewTextMaxLen)
	if err != nil {
		return err
	}
	r.Text = clean
	r.touch()
	return nil
}

// SetRating validates and updates the rating.
func (r *Review) SetRating(value int) error {
	if err := validateRating(value); err != nil {
		return err
	}
	r.Rating = value
	r.touch()
	return nil
}

// Apply validates the whole field map before mutating anything. The author
// and place references are immutable once set.
func (r *Review) Apply(fields map[string]any) error {
	var setters []func() error

	if v, ok, err := StringField(fields, "text"); err != nil {
		return err
	} else if ok {
		if _, err := requiredString("text", v, reviewTextMaxLen); err != nil {
			return err
		}
		setters = append(setters, func() error { return r.SetText(v) })
	}
	if v, ok, err := IntField(fields, "rating"); err != nil {
		return err
	} else if ok {
		if err := validateRating(v); err != nil {
			return err
		}
		setters = append(setters, func() error { return r.SetRating(v) })
	}

	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}
	r.touch()
	return nil
}

// Clone returns an independent copy.
func (r *Review) Clone() Entity {
	clone := *r
	return &clone
}

// Attribute exposes lookup fields for repository attribute queries.
func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "user_id":
		return r.UserID, true
	case "place_id":
		return r.PlaceID, true
	default:
		return nil, false
	}
}

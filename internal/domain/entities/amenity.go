package entities

const amenityNameMaxLen = 50

// Amenity is a feature like Wi-Fi or parking that can be linked to any
// number of places.
type Amenity struct {
	Base
	Name string `json:"name" db:"name"`
}

// NewAmenity validates the name before construction.
func NewAmenity(name string) (*Amenity, error) {
	clean, err := requiredString("name", name, amenityNameMaxLen)
	if err != nil {
		return nil, err
	}
	return &Amenity{
		Base: newBase(),
		Name: clean,
	}, nil
}

// SetName validates and updates the amenity name.
func (a *Amenity) SetName(value string) error {
	clean, err := requiredString("name", value, amenityNameMaxLen)
	if err != nil {
		return err
	}
	a.Name = clean
	a.touch()
	return nil
}

// Apply validates the field map before mutating anything.
func (a *Amenity) Apply(fields map[string]any) error {
	if v, ok, err := StringField(fields, "name"); err != nil {
		return err
	} else if ok {
		if err := a.SetName(v); err != nil {
			return err
		}
	}
	a.touch()
	return nil
}

// Clone returns an independent copy.
func (a *Amenity) Clone() Entity {
	clone := *a
	return &clone
}

// Attribute exposes lookup fields for repository attribute queries.
func (a *Amenity) Attribute(name string) (any, bool) {
	if name == "name" {
		return a.Name, true
	}
	return nil, false
}

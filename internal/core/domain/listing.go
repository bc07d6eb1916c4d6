package domain

import (
	"strings"
	"time"
)

// Listing is implemented by every directory record type served through the
// generic listing service.
type Listing interface {
	// Validate enforces the record's required fields and enums.
	Validate() error
	// Prepare clears client-controlled metadata, stamps timestamps and
	// records the creator where the record tracks one.
	Prepare(actor Identity, now time.Time)
}

// Patch is a typed partial update for a listing record.
type Patch interface {
	Validate() error
	// Fields returns the document fields to $set, keyed by stored name.
	Fields() map[string]any
}

// Timestamps is embedded in every stored record.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (t *Timestamps) stamp(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

// Baker is a home-baker listing.
type Baker struct {
	ID         string   `json:"id" bson:"_id,omitempty"`
	Name       string   `json:"name" bson:"name"`
	Menu       []string `json:"menu" bson:"menu"`
	Delivery   bool     `json:"delivery" bson:"delivery"`
	Rating     float64  `json:"rating" bson:"rating"`
	Contact    string   `json:"contact" bson:"contact"`
	Timestamps `bson:",inline"`
}

func (b *Baker) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return Invalid("name is required")
	}
	if strings.TrimSpace(b.Contact) == "" {
		return Invalid("contact is required")
	}
	return nil
}

func (b *Baker) Prepare(_ Identity, now time.Time) {
	b.ID = ""
	if b.Menu == nil {
		b.Menu = []string{}
	}
	b.stamp(now)
}

// BakerPatch is a partial update of a Baker.
type BakerPatch struct {
	Name     *string   `json:"name"`
	Menu     *[]string `json:"menu"`
	Delivery *bool     `json:"delivery"`
	Rating   *float64  `json:"rating"`
	Contact  *string   `json:"contact"`
}

func (p BakerPatch) Validate() error { return nil }

func (p BakerPatch) Fields() map[string]any {
	f := make(map[string]any)
	setIf(f, "name", p.Name)
	setIf(f, "menu", p.Menu)
	setIf(f, "delivery", p.Delivery)
	setIf(f, "rating", p.Rating)
	setIf(f, "contact", p.Contact)
	return f
}

// Laundry is a laundry-service listing. OwnerID references the user that
// created it.
type Laundry struct {
	ID              string  `json:"id" bson:"_id,omitempty"`
	Name            string  `json:"name" bson:"name"`
	Contact         string  `json:"contact" bson:"contact"`
	Price           float64 `json:"price" bson:"price"`
	PickupAvailable bool    `json:"pickupAvailable" bson:"pickupAvailable"`
	Timing          string  `json:"timing,omitempty" bson:"timing,omitempty"`
	OwnerID         string  `json:"ownerId" bson:"ownerId"`
	Timestamps      `bson:",inline"`
}

func (l *Laundry) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return Invalid("name is required")
	}
	if strings.TrimSpace(l.Contact) == "" {
		return Invalid("contact is required")
	}
	if l.Price < 0 {
		return Invalid("price must not be negative")
	}
	return nil
}

func (l *Laundry) Prepare(actor Identity, now time.Time) {
	l.ID = ""
	l.OwnerID = actor.UserID
	l.stamp(now)
}

// LaundryPatch is a partial update of a Laundry. The owner is not patchable.
type LaundryPatch struct {
	Name            *string  `json:"name"`
	Contact         *string  `json:"contact"`
	Price           *float64 `json:"price"`
	PickupAvailable *bool    `json:"pickupAvailable"`
	Timing          *string  `json:"timing"`
}

func (p LaundryPatch) Validate() error { return nil }

func (p LaundryPatch) Fields() map[string]any {
	f := make(map[string]any)
	setIf(f, "name", p.Name)
	setIf(f, "contact", p.Contact)
	setIf(f, "price", p.Price)
	setIf(f, "pickupAvailable", p.PickupAvailable)
	setIf(f, "timing", p.Timing)
	return f
}

// MedicalType classifies a medical facility.
type MedicalType string

const (
	MedicalEmergency MedicalType = "emergency"
	MedicalPharmacy  MedicalType = "pharmacy"
)

func (t MedicalType) Valid() bool {
	return t == MedicalEmergency || t == MedicalPharmacy
}

// Medical is a medical-facility listing.
type Medical struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	Name        string      `json:"name" bson:"name"`
	Type        MedicalType `json:"type" bson:"type"`
	Address     string      `json:"address" bson:"address"`
	Contact     string      `json:"contact" bson:"contact"`
	HasDelivery bool        `json:"hasDelivery" bson:"hasDelivery"`
	Timestamps  `bson:",inline"`
}

func (m *Medical) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return Invalid("name is required")
	case !m.Type.Valid():
		return Invalid("type must be one of: emergency, pharmacy")
	case strings.TrimSpace(m.Address) == "":
		return Invalid("address is required")
	case strings.TrimSpace(m.Contact) == "":
		return Invalid("contact is required")
	}
	return nil
}

func (m *Medical) Prepare(_ Identity, now time.Time) {
	m.ID = ""
	m.stamp(now)
}

// MedicalPatch is a partial update of a Medical.
type MedicalPatch struct {
	Name        *string      `json:"name"`
	Type        *MedicalType `json:"type"`
	Address     *string      `json:"address"`
	Contact     *string      `json:"contact"`
	HasDelivery *bool        `json:"hasDelivery"`
}

func (p MedicalPatch) Validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return Invalid("type must be one of: emergency, pharmacy")
	}
	return nil
}

func (p MedicalPatch) Fields() map[string]any {
	f := make(map[string]any)
	setIf(f, "name", p.Name)
	if p.Type != nil {
		f["type"] = string(*p.Type)
	}
	setIf(f, "address", p.Address)
	setIf(f, "contact", p.Contact)
	setIf(f, "hasDelivery", p.HasDelivery)
	return f
}

func setIf[V any](f map[string]any, key string, v *V) {
	if v != nil {
		f[key] = *v
	}
}

package handler

import "github.com/inest/inest-backend/internal/core/domain"

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// --- Listings ---

type createBakerRequest struct {
	Name     string   `json:"name"    validate:"required"`
	Menu     []string `json:"menu"`
	Delivery bool     `json:"delivery"`
	Rating   float64  `json:"rating"`
	Contact  string   `json:"contact" validate:"required"`
}

func (r createBakerRequest) toDomain() *domain.Baker {
	return &domain.Baker{
		Name:     r.Name,
		Menu:     r.Menu,
		Delivery: r.Delivery,
		Rating:   r.Rating,
		Contact:  r.Contact,
	}
}

type createLaundryRequest struct {
	Name            string   `json:"name"    validate:"required"`
	Contact         string   `json:"contact" validate:"required"`
	Price           *float64 `json:"price"   validate:"required,gte=0"`
	PickupAvailable bool     `json:"pickupAvailable"`
	Timing          string   `json:"timing"`
}

func (r createLaundryRequest) toDomain() *domain.Laundry {
	l := &domain.Laundry{
		Name:            r.Name,
		Contact:         r.Contact,
		PickupAvailable: r.PickupAvailable,
		Timing:          r.Timing,
	}
	if r.Price != nil {
		l.Price = *r.Price
	}
	return l
}

type createMedicalRequest struct {
	Name        string `json:"name"    validate:"required"`
	Type        string `json:"type"    validate:"required,oneof=emergency pharmacy"`
	Address     string `json:"address" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
	HasDelivery bool   `json:"hasDelivery"`
}

func (r createMedicalRequest) toDomain() *domain.Medical {
	return &domain.Medical{
		Name:        r.Name,
		Type:        domain.MedicalType(r.Type),
		Address:     r.Address,
		Contact:     r.Contact,
		HasDelivery: r.HasDelivery,
	}
}

// --- WhistleNest ---

type submitReportRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

package dto

import "time"

// CreateRestaurantRequest entrada para crear un restaurante.
type CreateRestaurantRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	NIT         string `json:"nit" validate:"required,min=1,max=20"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	TaxIncluded *bool  `json:"impuesto_incluido"`
}

// RestaurantResponse salida de un restaurante.
type RestaurantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NIT         string    `json:"nit"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Timezone    string    `json:"timezone"`
	Currency    string    `json:"currency"`
	TaxIncluded bool      `json:"impuesto_incluido"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RestaurantListResponse lista paginada de restaurantes.
type RestaurantListResponse struct {
	Items []RestaurantResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

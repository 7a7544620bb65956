package entity

import "time"

// Restaurant es el tenant del sistema: todo recurso pertenece a un restaurante.
// Timezone y Currency gobiernan los límites de día y el redondeo de montos.
type Restaurant struct {
	ID          string
	Name        string
	NIT         string
	Address     string
	Phone       string
	Timezone    string // IANA, ej: America/Bogota
	Currency    string // ISO 4217, ej: COP
	TaxIncluded bool   // los precios de la carta ya incluyen impuesto
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

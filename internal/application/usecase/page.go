package usecase

import "github.com/jhoicas/restaurante-api/internal/application/dto"

// normalizePage aplica los límites de paginación de dto.PageRequest.
func normalizePage(limit, offset int) (int, int) {
	p := dto.PageRequest{Limit: limit, Offset: offset}
	p.DefaultPage()
	return p.Limit, p.Offset
}

package ports

import "github.com/gabrielcapilla/musify/internal/domain"

type ConfigService interface {
	Load() (domain.Config, error)
}

package biz

import (
	"github.com/wardenbot/warden/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Profanity *usecase.ProfanityUsecase
	Activity  *usecase.ActivityUsecase
	Mutes     *usecase.MuteUsecase
}

package inbound

import (
	"context"

	"github.com/cotodev/smsauth/internal/otp/entity"
	"github.com/cotodev/smsauth/internal/otp/usecase"
	"github.com/cotodev/smsauth/internal/pkg/router"
)

type uc interface {
	Challenge(ctx context.Context, in usecase.ChallengeInput) (*usecase.ChallengeOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Descriptor(ctx context.Context) entity.Descriptor
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/otp/challenge", end.Challenge)
	r.POST("/api/v1/otp/verify", end.Verify)
	r.GET("/api/v1/otp/descriptor", end.Descriptor)
}

package http

import (
	"context"
	"io"

	"tunnelcli/internal/reduction"
	"tunnelcli/internal/services"
	api "tunnelcli/pkg/contracts/api/v1"
)

// ReductionServiceInterface is the part of services.ReductionService the
// reduction endpoints need
type ReductionServiceInterface interface {
	ReduceRequest(ctx context.Context, params api.ReduceParams, r io.Reader, source string) (*reduction.Result, float64, error)
	Geometry(ctx context.Context, chord, span float64) (services.GeometryReport, error)
}

var _ ReductionServiceInterface = (*services.ReductionService)(nil)

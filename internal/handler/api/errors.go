package api

import (
	"errors"

	models "SentimentDash/internal/domain/models"
	xhttp "SentimentDash/pkg/http"
)

const (
	msgMalformed = "Invalid response format from Playfair API"
	msgInternal  = "Internal Server Error"
)

// toAppError maps domain failures onto HTTP errors. Anything unrecognised
// becomes a generic 500 so internals never reach the client.
func toAppError(err error) *xhttp.AppError {
	var (
		ue *models.UpstreamError
		ge *models.GatewayError
	)
	switch {
	case errors.Is(err, models.ErrInvalidRange),
		errors.Is(err, models.ErrInvalidInterval),
		errors.Is(err, models.ErrRangeTooLarge):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.As(err, &ue):
		return xhttp.BadGatewayError(ue.Error()).WithParam("status", ue.Status).WithError(err)
	case errors.As(err, &ge):
		return xhttp.BadGatewayError(ge.Error()).WithParam("status", ge.Status).WithError(err)
	case errors.Is(err, models.ErrMalformedResponse):
		return xhttp.BadGatewayError(msgMalformed).WithError(err)
	default:
		return xhttp.InternalError(msgInternal).WithError(err)
	}
}

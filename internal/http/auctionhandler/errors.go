package auctionhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentauction/internal/auctionerrors"
)

var kinds = []struct {
	err    error
	kind   string
	status int
}{
	{auctionerrors.ErrValidation, "validation", http.StatusBadRequest},
	{auctionerrors.ErrNotFound, "not_found", http.StatusNotFound},
	{auctionerrors.ErrEligibility, "eligibility", http.StatusForbidden},
	{auctionerrors.ErrState, "state", http.StatusConflict},
	{auctionerrors.ErrConflict, "conflict", http.StatusConflict},
	{auctionerrors.ErrInfrastructure, "infrastructure", http.StatusServiceUnavailable},
}

// abortWithError maps a service error onto a status code and JSON body.
func abortWithError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error(), Kind: "internal"}
	status := http.StatusInternalServerError
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			resp.Kind, status = k.kind, k.status
			break
		}
	}

	var low *auctionerrors.BidTooLowError
	if errors.As(err, &low) {
		resp.MinimumBid = &low.Minimum
		status = http.StatusUnprocessableEntity
	}
	var full *auctionerrors.CapacityExceededError
	if errors.As(err, &full) {
		resp.CurrentBidders, resp.MaxBidders = &full.Current, &full.Max
	}

	if status >= http.StatusInternalServerError {
		zap.L().Error("http_request_failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
}

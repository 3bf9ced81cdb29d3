package server

import (
	"fmt"
	"net/http"

	"github.com/ammcap/Ammlytics/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func wrapDataErrResp(c *gin.Context, result any, err error) {
	if err != nil {
		reason := types.ReasonOf(err)
		log.Warn().Err(err).Str("reason", string(reason)).Msg("Report request failed")
		c.JSON(statusForReason(reason), errorResponse{
			Error:  err.Error(),
			Reason: string(reason),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// statusForReason maps failure reasons to HTTP statuses: upstream
// connectivity problems surface as 503, everything else as 502 since the
// request itself was well-formed.
func statusForReason(reason types.FailReason) int {
	if reason == types.ConnectivityFailure {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func wrapMissingParams(c *gin.Context, paramName string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Error:  fmt.Sprintf("Missing parameter %s", paramName),
		Reason: "missing_param",
	})
}

func wrapBadParam(c *gin.Context, paramName string, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Error:  fmt.Sprintf("Invalid parameter %s: %s", paramName, err.Error()),
		Reason: "invalid_param",
	})
}

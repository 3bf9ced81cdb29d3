package server

import (
	"errors"

	"github.com/ammcap/Ammlytics/types"
	"github.com/gin-gonic/gin"
)

func parseAddrParam(c *gin.Context, paramName string) (types.EthAddress, error) {
	arg := c.Query(paramName)
	if arg == "" {
		return "", nil
	}

	parsed := types.ValidateEthAddr(arg)
	if parsed == "" {
		return "", errors.New("invalid Ethereum address arg")
	}
	return parsed, nil
}

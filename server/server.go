package server

import (
	"net/http"

	"github.com/ammcap/Ammlytics/views"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIWebServer struct {
	Views     *views.Views
	StaticDir string
}

func (s *APIWebServer) Serve(listenAddr string) {
	r := gin.Default()
	r.Use(CORSMiddleware())
	r.GET("/api/data", s.queryPortfolio)

	if s.StaticDir != "" {
		r.StaticFile("/", s.StaticDir+"/index.html")
		r.StaticFile("/style.css", s.StaticDir+"/style.css")
		r.StaticFile("/script.js", s.StaticDir+"/script.js")
	}

	if err := r.Run(listenAddr); err != nil {
		log.Fatal().Err(err).Str("addr", listenAddr).Msg("Server failed")
	}
}

func (s *APIWebServer) queryPortfolio(c *gin.Context) {
	wallet, err := parseAddrParam(c, "wallet_address")
	if err != nil {
		wrapBadParam(c, "wallet_address", err)
		return
	}
	if wallet == "" {
		wrapMissingParams(c, "wallet_address")
		return
	}

	resp, err := s.Views.BuildPortfolioReport(wallet)
	wrapDataErrResp(c, resp, err)
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Package api exposes the card composers over HTTP: JSON options in, image
// bytes out.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/cardforge/internal/animated"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/logx"
)

// Server holds the renderers behind the HTTP handlers.
type Server struct {
	Cards    *cards.Renderer
	Animated *animated.Composer
	Log      *slog.Logger
}

// NewServer wires a server around the given renderers; nil fields get
// production defaults.
func NewServer(c *cards.Renderer, a *animated.Composer, log *slog.Logger) *Server {
	if c == nil {
		c = cards.New(cards.Config{Logger: log})
	}
	if a == nil {
		a = animated.New(animated.Config{Logger: log})
	}
	return &Server{Cards: c, Animated: a, Log: logx.OrNop(log)}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) welcomeCard(c *gin.Context) {
	var opts cards.WelcomeOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, "image/png")(s.Cards.RenderWelcome(c.Request.Context(), opts))
}

func (s *Server) rankCard(c *gin.Context) {
	var opts cards.RankOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, "image/png")(s.Cards.RenderRank(c.Request.Context(), opts))
}

func (s *Server) profileCard(c *gin.Context) {
	var opts cards.ProfileOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, "image/png")(s.Cards.RenderProfile(c.Request.Context(), opts))
}

func (s *Server) bannerCard(c *gin.Context) {
	var opts cards.BannerOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, "image/png")(s.Cards.RenderBanner(c.Request.Context(), opts))
}

func (s *Server) welcomeGIF(c *gin.Context) {
	var opts animated.WelcomeGIFOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, "image/gif")(s.Animated.RenderWelcomeGIF(c.Request.Context(), opts))
}

// qr returns a PNG QR code for the "text" query param.
func (s *Server) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text parameter"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// respond maps renderer errors onto HTTP statuses: validation errors are
// the caller's fault (400), avatar failures mean the subject could not be
// drawn (422), everything else is a server-side failure (500).
func (s *Server) respond(c *gin.Context, contentType string) func([]byte, error) {
	return func(buf []byte, err error) {
		if err == nil {
			c.Data(http.StatusOK, contentType, buf)
			return
		}
		var verr *cards.ValidationError
		var aerr *cards.AvatarError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		case errors.As(err, &aerr):
			s.Log.Warn("avatar processing failed", "subject", aerr.Subject, "error", aerr.Err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": aerr.Error()})
		default:
			s.Log.Error("render failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

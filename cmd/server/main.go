package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardforge/internal/animated"
	"github.com/youruser/cardforge/internal/api"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/fonts"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Register custom fonts at startup (best-effort): every .ttf under
	// FONTS_DIR becomes a family named after its file.
	if dir := os.Getenv("FONTS_DIR"); dir != "" {
		registerFonts(log, dir)
	}

	server := api.NewServer(
		cards.New(cards.Config{Logger: log}),
		animated.New(animated.Config{Logger: log}),
		log,
	)

	r := gin.Default()
	api.RegisterRoutes(r, server)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("starting server", "addr", "http://localhost:"+port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func registerFonts(log *slog.Logger, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("cannot read fonts dir", "dir", dir, "error", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".ttf") {
			continue
		}
		family := strings.TrimSuffix(name, filepath.Ext(name))
		if err := fonts.Default().RegisterFile(filepath.Join(dir, name), fonts.Family{Name: family}); err != nil {
			log.Warn("font registration failed", "file", name, "error", err)
			continue
		}
		log.Info("registered font", "family", family)
	}
}

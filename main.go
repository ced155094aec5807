package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	assistantx "github.com/otoasist/otoasist/agent/assistant"
	garagex "github.com/otoasist/otoasist/agent/garage"
	promptx "github.com/otoasist/otoasist/agent/prompt"
	statex "github.com/otoasist/otoasist/agent/state"
	configx "github.com/otoasist/otoasist/pkg/config"
	logx "github.com/otoasist/otoasist/pkg/logger"
)

type AppConfig struct {
	DatabasePath string        `envconfig:"DATABASE_PATH" split_words:"true" default:"auto_service.db"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" split_words:"true" default:"24h"`
	Debug        bool          `envconfig:"DEBUG" default:"false"`
	PrettyLog    bool          `envconfig:"PRETTY_LOG" split_words:"true" default:"true"`
}

func main() {
	cfg := configx.MustNew[AppConfig]("")
	logx.Init(logx.Config{Debug: cfg.Debug, PrettyFormat: cfg.PrettyLog})

	ctx := context.Background()

	store, err := garagex.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("open vehicle store")
	}
	defer store.Close()

	sessions := statex.NewMemoryStore(statex.WithTTL(cfg.SessionTTL))

	asst, err := assistantx.New(sessions, store, nil, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("build assistant")
	}

	// One session per process run; each utterance is one line on stdin.
	sessionID := uuid.NewString()
	log.Info().Str("session_id", sessionID).Msg("conversation started")

	fmt.Println(promptx.Welcome())

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		reply, err := asst.HandleUtterance(ctx, sessionID, text)
		if err != nil {
			fmt.Println("Üzgünüm, bir sorun oluştu. Tekrar deneyebilir misiniz?")
			continue
		}
		fmt.Println(reply)
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}

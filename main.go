package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	conciergex "github.com/wanderstay/concierge/agent/agents/concierge"
	contractx "github.com/wanderstay/concierge/agent/contract"
	llmx "github.com/wanderstay/concierge/agent/llm"
	notifyx "github.com/wanderstay/concierge/agent/notify"
	promptx "github.com/wanderstay/concierge/agent/prompt"
	reasoningx "github.com/wanderstay/concierge/agent/reasoning"
	statex "github.com/wanderstay/concierge/agent/state"
	toolx "github.com/wanderstay/concierge/agent/tool"
	"github.com/wanderstay/concierge/domain"
	configx "github.com/wanderstay/concierge/pkg/config"
	_ "github.com/wanderstay/concierge/pkg/logger/autoload"
	openrouterx "github.com/wanderstay/concierge/pkg/openrouter"
	qstashx "github.com/wanderstay/concierge/pkg/qstash"
)

type AppConfig struct {
	Identity           string `envconfig:"CONCIERGE_IDENTITY" default:"local-guest"`
	BookingDestination string `envconfig:"BOOKING_DESTINATION" default:"booking-intents"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	dbCfg := configx.MustNew[domain.DBConfig]("POSTGRES")
	db, err := domain.NewDB(*dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	qstashCfg := configx.MustNew[qstashx.Config]("QSTASH")
	notifier, err := notifyx.NewQStashNotifier(qstashx.MustNew(*qstashCfg), appCfg.BookingDestination)
	if err != nil {
		log.Fatal().Err(err).Msg("build booking notifier")
	}

	catalog, err := toolx.NewConciergeCatalog(toolx.Deps{
		Hotels:   domain.NewHotelRepo(db),
		Bookings: domain.NewOrderRepo(db),
		Issues:   domain.NewIssueRepo(db),
		Notifier: notifier,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build tool catalog")
	}

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	client, err := reasoningx.NewClient(openrouterx.NewClient(llmCfg.OpenRouter()), *llmCfg, promptx.Concierge())
	if err != nil {
		log.Fatal().Err(err).Msg("build reasoning client")
	}

	loopCfg := configx.MustNew[conciergex.Config]("CONCIERGE")
	service, err := conciergex.New(newStore(), client, toolx.NewExecutor(catalog), *loopCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build concierge service")
	}

	runREPL(service, appCfg.Identity)
}

// newStore prefers the durable Upstash store when configured and falls back
// to process memory otherwise.
func newStore() contractx.Store {
	if os.Getenv("UPSTASH_REDIS_URL") == "" {
		return statex.NewMemoryStore()
	}
	cfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	store, err := statex.NewUpstashRedisStore(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build upstash session store")
	}
	return store
}

func runREPL(service *conciergex.Service, identity string) {
	fmt.Printf("concierge ready (identity=%s). Type a message, or /reset, or /quit.\n", identity)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/reset":
			if err := service.Reset(context.Background(), identity); err != nil {
				log.Error().Err(err).Msg("reset session")
			}
			continue
		}

		reply, err := service.HandleMessage(context.Background(), identity, line)
		if err != nil {
			log.Error().Err(err).Msg("handle message")
			continue
		}
		fmt.Println(reply)
	}
}

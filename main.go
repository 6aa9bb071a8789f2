package main

import (
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pokerroom.com/server/game"
	"pokerroom.com/server/logging"
	"pokerroom.com/server/nats"
	"pokerroom.com/server/rest"
	"pokerroom.com/server/server"
	"pokerroom.com/server/util"
)

var mainLogger = log.With().Str("logger_name", "main::main").Logger()

func main() {
	if logging.IsColorLoggingEnabled() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	rdclient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d",
			util.TableServerEnvironment.GetRedisHost(),
			util.TableServerEnvironment.GetRedisPort()),
		Password: util.TableServerEnvironment.GetRedisPW(),
		DB:       util.TableServerEnvironment.GetRedisDB(),
	})

	store := game.NewRedisSessionStoreWithClient(rdclient)
	chat := game.NewRedisChatLog(rdclient)
	manager := game.NewManager(store)
	broadcaster := game.NewBroadcaster()

	natsURL := util.TableServerEnvironment.GetNatsURL()
	activity, err := nats.NewActivityPublisher(natsURL)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Cannot connect to the nats server")
	}
	defer activity.Close()

	lifecycle, err := nats.NewLifecycleListener(natsURL, manager)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Cannot subscribe to session lifecycle events")
	}
	defer lifecycle.Close()

	engine := game.NewEngine(manager, broadcaster, chat, activity)

	go rest.RunRestServer(util.TableServerEnvironment.GetRestAddr(), manager)

	ws := server.NewWebSocketServer(engine)
	if err := ws.Start(util.TableServerEnvironment.GetListenAddr()); err != nil {
		mainLogger.Fatal().Err(err).Msg("Websocket server stopped")
	}
}

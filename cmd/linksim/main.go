// Command linksim runs a transmitter node and a receiver node against an
// in-memory radio bus. Each newline on stdin presses the button once; the
// simulated actuator's transitions are logged.
package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/ystepanoff/triggerlink"
	"github.com/ystepanoff/triggerlink/config"
	"github.com/ystepanoff/triggerlink/driver/sim"
	"github.com/ystepanoff/triggerlink/hal"
)

var cli struct {
	TxConfig string `help:"Transmitter config (TOML)." type:"path"`
	RxConfig string `help:"Receiver config (TOML)." type:"path"`
	Debug    bool   `help:"Enable debug logging."`
}

// Radio bring-up failure is unrecoverable in-process: wait, then exit and
// let the supervisor restart us.
const restartDelay = 5 * time.Second

func main() {
	kong.Parse(&cli,
		kong.Name("linksim"),
		kong.Description("Wireless trigger link simulator: button node plus actuator node on one bus."),
	)

	level := zerolog.InfoLevel
	if cli.Debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	txCfg := config.Transmitter{Address: "02:00:00:00:00:01"}
	txCfg.ApplyDefaults()
	if cli.TxConfig != "" {
		var err error
		if txCfg, err = config.LoadTransmitter(cli.TxConfig); err != nil {
			log.Fatal().Err(err).Msg("transmitter config")
		}
	}

	rxCfg := config.Receiver{Address: "02:00:00:00:00:02"}
	rxCfg.ApplyDefaults()
	if cli.RxConfig != "" {
		var err error
		if rxCfg, err = config.LoadReceiver(cli.RxConfig); err != nil {
			log.Fatal().Err(err).Msg("receiver config")
		}
	}

	if txCfg.Channel != rxCfg.Channel {
		log.Warn().Uint8("tx", txCfg.Channel).Uint8("rx", rxCfg.Channel).
			Msg("channel mismatch: nodes will not exchange frames on real hardware")
	}

	bus := sim.NewBus()
	button := hal.NewMemPin(hal.High)
	actuator := hal.NewMemPin(hal.Low)

	tx := triggerlink.NewSimTransmitter(bus, txCfg, button, log.With().Str("node", "tx").Logger())
	rx, err := triggerlink.NewSimReceiver(bus, rxCfg, actuator, log.With().Str("node", "rx").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("receiver wiring")
	}

	for _, node := range []interface{ Init() error }{tx, rx} {
		if err := node.Init(); err != nil {
			log.Error().Err(err).Dur("restart_in", restartDelay).Msg("radio init failed")
			time.Sleep(restartDelay)
			os.Exit(1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go tx.Run(ctx)
	go rx.Run(ctx)
	go watchActuator(ctx, actuator, log)

	log.Info().Uint8("channel", txCfg.Channel).Msg("link up, press Enter to fire")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		press(button, txCfg.PollMs)
		if ctx.Err() != nil {
			break
		}
	}
}

// press holds the pin low long enough for the poll loop to sample it.
func press(button *hal.MemPin, pollMs uint32) {
	button.Write(hal.Low)
	time.Sleep(time.Duration(3*pollMs) * time.Millisecond)
	button.Write(hal.High)
}

func watchActuator(ctx context.Context, pin *hal.MemPin, log zerolog.Logger) {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	prev := hal.Low
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if level := pin.Read(); level != prev {
				prev = level
				if level == hal.High {
					log.Info().Msg("actuator on")
				} else {
					log.Info().Msg("actuator off")
				}
			}
		}
	}
}

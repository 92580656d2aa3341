package main

import (
	"context"
	"encoding/hex"
	"flag"
	"strconv"
	"time"

	"github.com/danmuck/zpart/internal/config"
	"github.com/danmuck/zpart/internal/observability"
	"github.com/danmuck/zpart/internal/protocol"
	"github.com/danmuck/zpart/internal/protocol/message"
	"github.com/danmuck/zpart/internal/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "pipe config file (defaults built in)")
	signalName := flag.String("signal", "", "send a control signal: ok|ko|stop|test")
	typed := flag.Bool("typed", false, "encode decimal arguments as int32 parts")
	template := flag.String("template", "", "write a config template to this path and exit")
	force := flag.Bool("force", false, "overwrite an existing template")
	timeout := flag.Duration("timeout", 5*time.Second, "send/receive deadline")
	flag.Parse()

	observability.InitLogger("partctl")
	observability.RegisterMetrics()

	if *template != "" {
		if err := config.WriteTemplate(*template, *force); err != nil {
			log.Fatal().Err(err).Msg("write template")
		}
		log.Info().Str("path", *template).Msg("wrote config template")
		return
	}

	cfg := transport.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadPipeConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
	}

	msg, err := buildMessage(flag.Args(), *signalName, *typed)
	if err != nil {
		log.Fatal().Err(err).Msg("build message")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	got, err := roundTrip(ctx, cfg, msg)
	if err != nil {
		log.Fatal().Err(err).Msg("round trip")
	}
	report(got)
	if err := got.Close(); err != nil {
		log.Warn().Err(err).Msg("release received message")
	}
}

func buildMessage(args []string, signalName string, typed bool) (*message.Message, error) {
	if signalName != "" {
		if len(args) > 0 {
			return nil, errors.New("a signal is a single frame; drop the extra arguments")
		}
		sig, ok := protocol.ParseSignal(signalName)
		if !ok {
			return nil, errors.Errorf("unknown signal %q", signalName)
		}
		return message.New(sig)
	}
	if len(args) == 0 {
		return nil, errors.New("no parts given")
	}
	values := make([]any, 0, len(args))
	for _, arg := range args {
		if typed {
			if n, err := strconv.ParseInt(arg, 10, 32); err == nil {
				values = append(values, int32(n))
				continue
			}
		}
		values = append(values, arg)
	}
	return message.New(values...)
}

func roundTrip(ctx context.Context, cfg transport.Config, msg *message.Message) (*message.Message, error) {
	pipe, err := transport.NewPipe(cfg)
	if err != nil {
		return nil, err
	}
	if err := pipe.Send(ctx, msg); err != nil {
		_ = msg.Close()
		_ = pipe.Close()
		return nil, err
	}
	got, err := pipe.Receive(ctx)
	if closeErr := pipe.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	return got, err
}

func report(msg *message.Message) {
	log.Info().Int("parts", msg.Parts()).Bool("signal", msg.IsSignal()).Msg("received")
	if sig, err := msg.Signal(); err == nil {
		log.Info().Stringer("signal", sig).Msg("control frame")
	}
	for i := 0; i < msg.Parts(); i++ {
		data, err := msg.RawData(i)
		if err != nil {
			log.Error().Err(err).Int("part", i).Msg("read part")
			continue
		}
		log.Info().Int("part", i).Int("size", len(data)).Str("hex", hex.EncodeToString(data)).Msg("part")
	}
}

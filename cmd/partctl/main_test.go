package main

import (
	"context"
	"testing"
	"time"

	"github.com/danmuck/zpart/internal/config"
	"github.com/danmuck/zpart/internal/protocol"
	"github.com/danmuck/zpart/internal/protocol/message"
	"github.com/danmuck/zpart/internal/testutil/testlog"
	"github.com/danmuck/zpart/internal/transport"
)

func TestBuildMessageTyped(t *testing.T) {
	testlog.Start(t)
	msg, err := buildMessage([]string{"temp", "21", "x9"}, "", true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if msg.Parts() != 3 {
		t.Fatalf("unexpected parts: %d", msg.Parts())
	}
	n, err := message.Get[int32](msg, 1)
	if err != nil || n != 21 {
		t.Fatalf("typed part: n=%d err=%v", n, err)
	}
	if s, _ := msg.GetString(2); s != "x9" {
		t.Fatalf("non-numeric argument not kept as text: %q", s)
	}
}

func TestBuildMessageSignal(t *testing.T) {
	testlog.Start(t)
	msg, err := buildMessage(nil, "stop", false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sig, err := msg.Signal()
	if err != nil || sig != protocol.SignalStop {
		t.Fatalf("signal: %v err=%v", sig, err)
	}
	if _, err := buildMessage([]string{"extra"}, "stop", false); err == nil {
		t.Fatalf("expected error for signal with arguments")
	}
	if _, err := buildMessage(nil, "nope", false); err == nil {
		t.Fatalf("expected error for unknown signal")
	}
	if _, err := buildMessage(nil, "", false); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

func TestRoundTripWithShippedConfig(t *testing.T) {
	testlog.Start(t)
	cfg, err := config.LoadPipeConfig("config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != transport.DefaultConfig() {
		t.Fatalf("shipped config drifted from defaults: %+v", cfg)
	}

	msg, err := buildMessage([]string{"a", "7"}, "", true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := roundTrip(ctx, cfg, msg)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	defer got.Close()
	if msg.Parts() != 0 {
		t.Fatalf("sender kept %d parts", msg.Parts())
	}
	n, err := message.Get[int32](got, 1)
	if err != nil || n != 7 {
		t.Fatalf("received part: n=%d err=%v", n, err)
	}
	report(got)
}

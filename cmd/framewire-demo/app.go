package main

import (
	"os"

	"go.uber.org/zap"

	"framewire/pkg/config"
	"framewire/pkg/messages"
	"framewire/pkg/node"
	"framewire/pkg/observability"
	"framewire/pkg/router"
	"framewire/pkg/transport/memlink"
	"framewire/pkg/wire"
)

// run is the main entry point after CLI parsing. It loads configuration,
// sets up logging, wires two Nodes over an in-memory loopback link, and
// exchanges one typed message to demonstrate the end-to-end path.
func run(opts Options) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	zap.L().Info("framewire-demo started", zap.String("app", cfg.AppName))
	zap.L().Info("effective configuration", zap.Any("config", cfg))

	link := memlink.New(4 * wire.MaxPacketSize(cfg.Node.MaxPayloadSize))
	tallyB := observability.NewErrorTally()
	nodeA := node.NewNode(link.EndpointA(), cfg.Node.MaxPayloadSize, cfg.Node.MaxHandlers, cfg.Node.ProtocolVersion, node.WithLogger(logger))
	nodeB := node.NewNode(link.EndpointB(), cfg.Node.MaxPayloadSize, cfg.Node.MaxHandlers, cfg.Node.ProtocolVersion, node.WithLogger(logger), node.WithErrorTally(tallyB))

	const pingMsgID = 1
	router.RegisterTypedHandler(nodeB.Router(), pingMsgID, func(m *messages.Ping) wire.ErrorCode {
		zap.L().Info("received ping", zap.Uint32("seq", m.Seq), zap.Uint64("sent_at_ms", m.SentAtMs))
		return wire.OK
	})

	ping := &messages.Ping{Seq: 1, SentAtMs: 0}
	if code := node.PublishTyped(nodeA, pingMsgID, ping); code != wire.OK {
		zap.L().Error("publish failed", zap.String("code", code.Error()))
		return 1
	}

	if errs := nodeB.Poll(); errs != 0 {
		tallyB.LogAndReset(logger)
		zap.L().Error("poll reported errors", zap.Int("count", errs))
		return 1
	}

	zap.L().Info("demo exchange complete")
	return 0
}

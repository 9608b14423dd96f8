package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lzww0608/uuidgen"
	appcfg "github.com/Lzww0608/uuidgen/internal/config"
	"github.com/Lzww0608/uuidgen/nodeid"
)

// nodeProvider resolves the configured node id backend. The returned func
// releases whatever connection the backend holds.
func nodeProvider(ctx context.Context, cfg appcfg.NodeConfig, logger *slog.Logger) (uuidgen.NodeIDProvider, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case appcfg.BackendRandom:
		p, err := uuidgen.NewRandomNodeIDProvider()
		return p, noop, err

	case appcfg.BackendStatic:
		id, err := uuidgen.ParseNodeID(cfg.Static)
		if err != nil {
			return nil, nil, fmt.Errorf("node.static: %w", err)
		}
		return uuidgen.StaticNodeIDProvider(id), noop, nil

	case appcfg.BackendHardware:
		p, err := uuidgen.NewHardwareNodeIDProvider()
		return p, noop, err

	case appcfg.BackendRedis:
		rc := nodeid.DefaultRedisConfig()
		rc.Addr = cfg.Redis.Addr
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB
		rc.Key = cfg.Redis.Key
		client, err := nodeid.DialRedis(ctx, rc)
		if err != nil {
			return nil, nil, err
		}
		p, err := nodeid.Provider(ctx, nodeid.NewRedisAllocator(client, rc.Key, logger))
		_ = client.Close()
		if err != nil {
			return nil, nil, err
		}
		return p, noop, nil

	case appcfg.BackendMySQL:
		db, err := nodeid.OpenMySQL(cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		if err := nodeid.EnsureSchema(ctx, db); err != nil {
			return nil, nil, err
		}
		if err := nodeid.RegisterTag(ctx, db, cfg.MySQL.Tag, cfg.MySQL.Step); err != nil {
			return nil, nil, err
		}
		p, err := nodeid.Provider(ctx, nodeid.NewSegmentAllocator(db, cfg.MySQL.Tag, logger))
		if err != nil {
			return nil, nil, err
		}
		return p, noop, nil

	case appcfg.BackendZooKeeper:
		zc := cfg.ZooKeeper
		reg, closeConn, err := nodeid.DialZK(nodeid.ZKConfig{
			Servers:        zc.Servers,
			Root:           zc.Root,
			Service:        zc.Service,
			Instance:       zc.Instance,
			SessionTimeout: zc.SessionTimeout,
			CacheDir:       zc.CacheDir,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if _, err := reg.Register(ctx); err != nil {
			closeConn()
			return nil, nil, err
		}
		hbCtx, cancel := context.WithCancel(ctx)
		go reg.Heartbeat(hbCtx, zc.Heartbeat)
		return reg, func() {
			cancel()
			closeConn()
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown node backend %q", cfg.Backend)
}

package nodeid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
)

// DefaultZKRoot is the znode under which all services register.
const DefaultZKRoot = "/uuidgen"

// NodeInfo is stored in the instance znode and in the local cache file.
type NodeInfo struct {
	NodeID     uint64 `json:"node_id"`
	Sequence   uint64 `json:"sequence"`
	LastTime   int64  `json:"last_time"`   // Last heartbeat, Unix ms
	CreateTime int64  `json:"create_time"` // Unix ms
}

// ZKConfig configures a ZKRegistry.
type ZKConfig struct {
	Servers        []string
	Root           string // defaults to DefaultZKRoot
	Service        string
	Instance       string // stable name of this process, e.g. host:port
	SessionTimeout time.Duration
	CacheDir       string // empty disables the local cache
}

// zkConn is the subset of *zk.Conn the registry uses.
type zkConn interface {
	Exists(path string) (bool, *zk.Stat, error)
	Get(path string) ([]byte, *zk.Stat, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
}

// ZKRegistry allocates node ids from a persistent sequential znode under
// <root>/<service>/seq and remembers the id of each instance under
// <root>/<service>/instances/<instance>, so a restarted process gets its old
// node id back.
type ZKRegistry struct {
	conn zkConn
	cfg  ZKConfig
	log  *slog.Logger
	now  func() time.Time

	mu   sync.Mutex
	info NodeInfo
}

// DialZK connects to ZooKeeper and returns a registry plus a function that
// closes the session.
func DialZK(cfg ZKConfig, logger *slog.Logger) (*ZKRegistry, func(), error) {
	logger = orDiscard(logger)
	timeout := cfg.SessionTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	conn, events, err := zk.Connect(cfg.Servers, timeout, zk.WithLogger(zkLogger{logger}))
	if err != nil {
		return nil, nil, fmt.Errorf("connect zk: %w", err)
	}
	go func() {
		for ev := range events {
			logger.Debug("zookeeper event", "type", ev.Type.String(), "state", ev.State.String(), "path", ev.Path)
		}
	}()

	return newZKRegistry(conn, cfg, logger), conn.Close, nil
}

func newZKRegistry(conn zkConn, cfg ZKConfig, logger *slog.Logger) *ZKRegistry {
	if cfg.Root == "" {
		cfg.Root = DefaultZKRoot
	}
	return &ZKRegistry{
		conn: conn,
		cfg:  cfg,
		log:  orDiscard(logger).With("component", "nodeid.zookeeper", "service", cfg.Service),
		now:  time.Now,
	}
}

func (r *ZKRegistry) servicePath() string  { return path.Join(r.cfg.Root, r.cfg.Service) }
func (r *ZKRegistry) instancePath() string { return path.Join(r.servicePath(), "instances", r.cfg.Instance) }

// Next allocates a fresh node id from the sequential znode. Unlike Register
// it records nothing, so every call returns a different id.
func (r *ZKRegistry) Next(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := r.ensureTree(); err != nil {
		return 0, err
	}
	seq, err := r.allocate()
	if err != nil {
		return 0, err
	}
	return ToNodeID(seq)
}

// Register returns the node id of this instance. An existing registration in
// ZooKeeper is recovered first, then the local cache; otherwise a new id is
// allocated. Recovery fails with ErrClockRollback when the wall clock is
// behind the recorded last heartbeat.
func (r *ZKRegistry) Register(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.cfg.Instance == "" {
		return 0, errors.New("nodeid: zookeeper instance name is required")
	}
	if err := r.ensureTree(); err != nil {
		return 0, err
	}

	now := r.now().UnixMilli()
	instancePath := r.instancePath()

	exists, _, err := r.conn.Exists(instancePath)
	if err != nil {
		return 0, fmt.Errorf("check instance node: %w", err)
	}

	var info NodeInfo
	switch {
	case exists:
		data, _, err := r.conn.Get(instancePath)
		if err != nil {
			return 0, fmt.Errorf("get instance node: %w", err)
		}
		if err := json.Unmarshal(data, &info); err != nil {
			return 0, fmt.Errorf("decode instance node: %w", err)
		}
		if now < info.LastTime {
			return 0, fmt.Errorf("%w: %d < %d", ErrClockRollback, now, info.LastTime)
		}
		r.log.Info("recovered node id from zookeeper", "node_id", info.NodeID)
	default:
		if cached, err := r.loadLocalCache(); err == nil {
			if now < cached.LastTime {
				return 0, fmt.Errorf("%w: %d < %d", ErrClockRollback, now, cached.LastTime)
			}
			info = cached
			r.log.Info("recovered node id from local cache", "node_id", info.NodeID)
		} else {
			seq, err := r.allocate()
			if err != nil {
				return 0, err
			}
			id, err := ToNodeID(seq)
			if err != nil {
				return 0, err
			}
			info = NodeInfo{NodeID: id, Sequence: seq, CreateTime: now}
			r.log.Info("allocated node id", "node_id", id, "sequence", seq)
		}
	}
	info.LastTime = now

	data, _ := json.Marshal(info)
	if exists {
		_, err = r.conn.Set(instancePath, data, -1)
	} else {
		_, err = r.conn.Create(instancePath, data, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return 0, fmt.Errorf("register instance node: %w", err)
	}

	r.mu.Lock()
	r.info = info
	r.mu.Unlock()
	r.saveLocalCache(info)
	return info.NodeID, nil
}

// NodeID returns the id obtained by Register, which makes a registered
// ZKRegistry usable as a uuidgen.NodeIDProvider.
func (r *ZKRegistry) NodeID() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info.NodeID
}

// Heartbeat refreshes the instance's LastTime in ZooKeeper and in the local
// cache every interval until ctx is done.
func (r *ZKRegistry) Heartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.beat()
		}
	}
}

func (r *ZKRegistry) beat() {
	now := r.now().UnixMilli()

	r.mu.Lock()
	if now < r.info.LastTime {
		last := r.info.LastTime
		r.mu.Unlock()
		r.log.Warn("clock rollback detected during heartbeat", "now", now, "last", last)
		return
	}
	r.info.LastTime = now
	info := r.info
	r.mu.Unlock()

	data, _ := json.Marshal(info)
	// ZooKeeper may be briefly unavailable; the next beat retries
	if _, err := r.conn.Set(r.instancePath(), data, -1); err != nil {
		r.log.Warn("heartbeat update failed", "error", err)
	}
	r.saveLocalCache(info)
}

// allocate creates a persistent sequential znode and returns its sequence.
func (r *ZKRegistry) allocate() (uint64, error) {
	created, err := r.conn.Create(path.Join(r.servicePath(), "seq", "node-"), nil,
		zk.FlagSequence, zk.WorldACL(zk.PermAll))
	if err != nil {
		return 0, fmt.Errorf("create sequence node: %w", err)
	}
	idx := strings.LastIndex(created, "node-")
	if idx < 0 {
		return 0, fmt.Errorf("unexpected sequence node %q", created)
	}
	seq, err := strconv.ParseUint(created[idx+len("node-"):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse sequence node %q: %w", created, err)
	}
	return seq, nil
}

// ensureTree creates the registry's parent znodes if needed.
func (r *ZKRegistry) ensureTree() error {
	for _, p := range []string{
		r.cfg.Root,
		r.servicePath(),
		path.Join(r.servicePath(), "seq"),
		path.Join(r.servicePath(), "instances"),
	} {
		exists, _, err := r.conn.Exists(p)
		if err != nil {
			return fmt.Errorf("check %s: %w", p, err)
		}
		if exists {
			continue
		}
		_, err = r.conn.Create(p, []byte{}, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("create %s: %w", p, err)
		}
	}
	return nil
}

func (r *ZKRegistry) cacheFile() string {
	if r.cfg.CacheDir == "" {
		return ""
	}
	name := fmt.Sprintf(".uuidgen_%s_%s.json", r.cfg.Service, r.cfg.Instance)
	return filepath.Join(r.cfg.CacheDir, strings.NewReplacer("/", "_", ":", "_").Replace(name))
}

// saveLocalCache saves the given NodeInfo to a file for local state recovery.
func (r *ZKRegistry) saveLocalCache(info NodeInfo) {
	file := r.cacheFile()
	if file == "" {
		return
	}
	data, _ := json.Marshal(info)
	if err := os.WriteFile(file, data, 0o600); err != nil {
		r.log.Warn("write node cache failed", "file", file, "error", err)
	}
}

// loadLocalCache loads NodeInfo from the local cache file, if present.
func (r *ZKRegistry) loadLocalCache() (NodeInfo, error) {
	file := r.cacheFile()
	if file == "" {
		return NodeInfo{}, os.ErrNotExist
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return NodeInfo{}, err
	}
	var info NodeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return NodeInfo{}, fmt.Errorf("decode node cache: %w", err)
	}
	return info, nil
}

// zkLogger routes the client's internal messages to slog at debug level.
type zkLogger struct {
	*slog.Logger
}

func (l zkLogger) Printf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

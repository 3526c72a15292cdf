package gossip

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	mrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/driftmesh/driftmesh/internal/crypto"
	"github.com/driftmesh/driftmesh/internal/orderbook"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

var log = logging.GetDefault().Component("gossip")

// Mode selects whether a shard propagates incremental deltas or always
// falls back to full-state exchange.
type Mode string

const (
	ModePush Mode = "push"
	ModePull Mode = "pull"
)

// Config controls gossip scheduling and anti-entropy behavior. Field names
// mirror the recognized config keys (gossip.mode, gossip.use_deltas, etc.).
type Config struct {
	DeltaIntervalSec    int  `yaml:"delta_interval_sec"`
	SnapshotIntervalSec int  `yaml:"snapshot_interval_sec"`
	Mode                Mode `yaml:"mode"`
	UseDeltas           bool `yaml:"use_deltas"`
	RPCTimeoutSec       int  `yaml:"rpc_timeout_sec"`
	SuspicionThreshold  int  `yaml:"suspicion_threshold"`
}

// DefaultConfig returns the defaults named in the recognized-config list:
// 5s delta interval, 60s snapshot interval, push mode with deltas enabled.
func DefaultConfig() Config {
	return Config{
		DeltaIntervalSec:    5,
		SnapshotIntervalSec: 60,
		Mode:                ModePush,
		UseDeltas:           true,
		RPCTimeoutSec:       10,
		SuspicionThreshold:  DefaultSuspicionThreshold,
	}
}

// ShardStore is the shard manager's view, as consumed by the gossip layer:
// enumerate locally-hosted shards, fetch/merge their CRDT state, and
// encode/apply versioned snapshots.
type ShardStore interface {
	Shards() []uint32
	State(shardID uint32) (*orderbook.State, bool)
	Merge(shardID uint32, remote *orderbook.State) error
	LatestVersion(shardID uint32) uint64
	Snapshot(shardID uint32) (*orderbook.Snapshot, error)
	ApplySnapshot(shardID uint32, snap *orderbook.Snapshot) error
	HasAnySnapshot() bool
}

// Gossiper runs the per-shard gossip tick, snapshot anti-entropy exchange,
// and initial-sync handshake described by the distributed order-book
// protocol. One Gossiper serves every shard a node hosts.
type Gossiper struct {
	transport Transport
	shards    ShardStore
	identity  *crypto.Identity
	cfg       Config
	tracker   *peerTracker

	knownPeers   map[string]struct{}
	knownPeersMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Gossiper. identity signs every outbound envelope; shards
// provides access to the locally replicated CRDT state.
func New(transport Transport, shards ShardStore, identity *crypto.Identity, cfg Config) *Gossiper {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Gossiper{
		transport:  transport,
		shards:     shards,
		identity:   identity,
		cfg:        cfg,
		knownPeers: make(map[string]struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	g.tracker = newPeerTracker(cfg.SuspicionThreshold, g.disconnectPeer)
	return g
}

// Start registers the stream handler and launches the background tick
// loops. Each shard's delta and snapshot ticks are scheduled independently
// so that a slow shard cannot stall another.
func (g *Gossiper) Start() {
	g.transport.SetStreamHandler(Protocol, g.handleStream)

	for _, shardID := range g.shards.Shards() {
		go g.deltaLoop(shardID)
		go g.snapshotLoop(shardID)
	}

	if !g.shards.HasAnySnapshot() {
		go g.attemptInitialSync()
	}

	log.Info("gossip started", "shards", len(g.shards.Shards()), "mode", g.cfg.Mode)
}

// Stop cancels every background loop.
func (g *Gossiper) Stop() {
	g.cancel()
	log.Info("gossip stopped")
}

// NotePeer records a newly-observed peer ID so it is eligible for initial
// sync selection and future sends.
func (g *Gossiper) NotePeer(peerID string) {
	g.knownPeersMu.Lock()
	g.knownPeers[peerID] = struct{}{}
	g.knownPeersMu.Unlock()
}

func (g *Gossiper) disconnectPeer(peerID string) {
	log.Warn("disconnecting peer after repeated invalid gossip messages", "peer", peerID)
	if err := g.transport.Disconnect(peerID); err != nil {
		log.Debug("disconnect failed", "peer", peerID, "error", err)
	}
	g.knownPeersMu.Lock()
	delete(g.knownPeers, peerID)
	g.knownPeersMu.Unlock()
}

func (g *Gossiper) peerList() []string {
	peers := g.transport.Peers()
	if len(peers) > 0 {
		return peers
	}
	g.knownPeersMu.Lock()
	defer g.knownPeersMu.Unlock()
	out := make([]string, 0, len(g.knownPeers))
	for p := range g.knownPeers {
		out = append(out, p)
	}
	return out
}

// deltaLoop periodically re-broadcasts the full live delta for a shard to
// every peer in push mode. Applications call BroadcastDelta directly on
// admission for the low-latency path; this loop is the backstop that keeps
// peers converging even if an event-driven send was dropped.
func (g *Gossiper) deltaLoop(shardID uint32) {
	if g.cfg.Mode != ModePush || !g.cfg.UseDeltas {
		return
	}
	interval := time.Duration(g.cfg.DeltaIntervalSec) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case <-ticker.C:
			state, ok := g.shards.State(shardID)
			if !ok {
				continue
			}
			if err := g.BroadcastDelta(shardID, state); err != nil {
				log.Debug("delta broadcast failed", "shard_id", shardID, "error", err)
			}
		}
	}
}

// snapshotLoop periodically performs the (shard_id, latest_version)
// exchange against every known peer, requesting a newer snapshot when one
// is offered.
func (g *Gossiper) snapshotLoop(shardID uint32) {
	interval := time.Duration(g.cfg.SnapshotIntervalSec) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case <-ticker.C:
			g.exchangeSnapshots(shardID)
		}
	}
}

func (g *Gossiper) exchangeSnapshots(shardID uint32) {
	version := g.shards.LatestVersion(shardID)
	payload := SnapshotOfferPayload{ShardID: shardID, LatestVersion: version}

	for _, peerID := range g.peerList() {
		if err := g.sendEnvelope(peerID, MsgSnapshotOffer, payload); err != nil {
			log.Debug("snapshot offer failed", "peer", peerID, "shard_id", shardID, "error", err)
		}
	}
}

// attemptInitialSync is the bootstrap path used when a node has no local
// snapshots of any shard: pick one known peer uniformly at random, ask for
// everything it has, and merge every snapshot returned.
func (g *Gossiper) attemptInitialSync() {
	time.Sleep(time.Duration(500+mrand.Intn(500)) * time.Millisecond)

	peers := g.peerList()
	if len(peers) == 0 {
		log.Debug("initial sync deferred: no known peers yet")
		return
	}
	target := peers[mrand.Intn(len(peers))]

	ctx, cancel := context.WithTimeout(g.ctx, g.rpcTimeout())
	defer cancel()

	if err := g.RequestAllSnapshots(ctx, target); err != nil {
		log.Warn("initial sync failed", "peer", target, "error", err)
	}
}

func (g *Gossiper) rpcTimeout() time.Duration {
	if g.cfg.RPCTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(g.cfg.RPCTimeoutSec) * time.Second
}

// BroadcastDelta signs and sends the shard's current add/tombstone sets to
// every connected peer. Called directly from order admission for the
// optional low-latency path, and from deltaLoop as the periodic backstop.
func (g *Gossiper) BroadcastDelta(shardID uint32, state *orderbook.State) error {
	adds, tombstones := state.Entries()
	payload := DeltaPayload{ShardID: shardID, Adds: adds, Tombstones: tombstones}

	var errs []error
	for _, peerID := range g.peerList() {
		if err := g.sendEnvelope(peerID, MsgDelta, payload); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("delta send failed for %d/%d peers: %w", len(errs), len(g.peerList()), errs[0])
	}
	return nil
}

// RequestAllSnapshots implements the initial-sync handshake: send a
// SnapshotRequest with All=true and merge every Snapshot message the peer
// streams back until it closes the stream.
func (g *Gossiper) RequestAllSnapshots(ctx context.Context, peerID string) error {
	stream, err := g.transport.OpenStream(ctx, peerID, Protocol)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	env, err := newEnvelope(MsgSnapshotRequest, SnapshotRequestPayload{All: true}, freshNonce(), g.identity)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(stream).Encode(env); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	decoder := json.NewDecoder(stream)
	merged := 0
	for {
		var resp Envelope
		if err := decoder.Decode(&resp); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("decode snapshot response: %w", err)
		}
		if resp.Type != MsgSnapshot {
			continue
		}
		if !resp.Verify() {
			g.tracker.Flag(peerID)
			continue
		}
		var snapPayload SnapshotPayload
		if err := json.Unmarshal(resp.Payload, &snapPayload); err != nil {
			continue
		}
		snap := &orderbook.Snapshot{ShardID: snapPayload.ShardID, Version: snapPayload.Version, Data: snapPayload.Data}
		if err := g.shards.ApplySnapshot(snapPayload.ShardID, snap); err != nil {
			log.Debug("apply snapshot failed", "shard_id", snapPayload.ShardID, "error", err)
			continue
		}
		merged++
	}

	log.Info("initial sync complete", "peer", peerID, "snapshots_merged", merged)
	return nil
}

func (g *Gossiper) sendEnvelope(peerID string, msgType MessageType, payload interface{}) error {
	ctx, cancel := context.WithTimeout(g.ctx, g.rpcTimeout())
	defer cancel()

	stream, err := g.transport.OpenStream(ctx, peerID, Protocol)
	if err != nil {
		return fmt.Errorf("open stream to %s: %w", peerID, err)
	}
	defer stream.Close()

	env, err := newEnvelope(msgType, payload, freshNonce(), g.identity)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(stream).Encode(env); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return nil
}

// handleStream is the inbound stream handler for every gossip message type.
func (g *Gossiper) handleStream(peerID string, s Stream) {
	defer s.Close()
	g.NotePeer(peerID)

	decoder := json.NewDecoder(s)
	var env Envelope
	if err := decoder.Decode(&env); err != nil {
		if err != io.EOF {
			log.Debug("failed to decode gossip envelope", "peer", peerID, "error", err)
		}
		return
	}

	if !env.Verify() {
		log.Debug("dropping envelope with invalid signature", "peer", peerID, "type", env.Type)
		g.tracker.Flag(peerID)
		return
	}
	if g.tracker.SeenNonce(env.Nonce) {
		log.Debug("dropping replayed envelope", "peer", peerID, "nonce", env.Nonce)
		return
	}

	switch env.Type {
	case MsgDelta:
		g.handleDelta(peerID, env.Payload)
	case MsgSnapshotOffer:
		g.handleSnapshotOffer(peerID, env.Payload)
	case MsgSnapshotRequest:
		g.handleSnapshotRequest(peerID, s, env.Payload)
	case MsgPing:
		g.handlePing(peerID, s)
	default:
		log.Debug("unhandled gossip message type", "type", env.Type)
	}
}

func (g *Gossiper) handleDelta(peerID string, raw json.RawMessage) {
	var payload DeltaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		g.tracker.Flag(peerID)
		return
	}

	remote := orderbook.NewState(payload.ShardID)
	for _, e := range payload.Adds {
		remote.Adds[e.Order.OrderID] = e
	}
	for _, e := range payload.Tombstones {
		remote.Tombstones[e.Order.OrderID] = e
	}

	if err := g.shards.Merge(payload.ShardID, remote); err != nil {
		log.Debug("merge failed", "shard_id", payload.ShardID, "peer", peerID, "error", err)
	}
}

func (g *Gossiper) handleSnapshotOffer(peerID string, raw json.RawMessage) {
	var payload SnapshotOfferPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		g.tracker.Flag(peerID)
		return
	}

	ourVersion := g.shards.LatestVersion(payload.ShardID)
	if payload.LatestVersion <= ourVersion {
		return
	}

	ctx, cancel := context.WithTimeout(g.ctx, g.rpcTimeout())
	defer cancel()

	stream, err := g.transport.OpenStream(ctx, peerID, Protocol)
	if err != nil {
		log.Debug("failed to open stream for snapshot pull", "peer", peerID, "error", err)
		return
	}
	defer stream.Close()

	env, err := newEnvelope(MsgSnapshotRequest, SnapshotRequestPayload{ShardID: payload.ShardID}, freshNonce(), g.identity)
	if err != nil {
		return
	}
	if err := json.NewEncoder(stream).Encode(env); err != nil {
		return
	}

	var resp Envelope
	if err := json.NewDecoder(stream).Decode(&resp); err != nil {
		return
	}
	if !resp.Verify() || resp.Type != MsgSnapshot {
		g.tracker.Flag(peerID)
		return
	}
	var snapPayload SnapshotPayload
	if err := json.Unmarshal(resp.Payload, &snapPayload); err != nil {
		return
	}
	snap := &orderbook.Snapshot{ShardID: snapPayload.ShardID, Version: snapPayload.Version, Data: snapPayload.Data}
	if err := g.shards.ApplySnapshot(snapPayload.ShardID, snap); err != nil {
		log.Debug("apply pulled snapshot failed", "error", err)
	}
}

func (g *Gossiper) handleSnapshotRequest(peerID string, s Stream, raw json.RawMessage) {
	var payload SnapshotRequestPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		g.tracker.Flag(peerID)
		return
	}

	shardIDs := []uint32{payload.ShardID}
	if payload.All {
		shardIDs = g.shards.Shards()
	}

	encoder := json.NewEncoder(s)
	for _, shardID := range shardIDs {
		snap, err := g.shards.Snapshot(shardID)
		if err != nil {
			continue
		}
		respPayload := SnapshotPayload{ShardID: snap.ShardID, Version: snap.Version, Data: snap.Data}
		env, err := newEnvelope(MsgSnapshot, respPayload, freshNonce(), g.identity)
		if err != nil {
			continue
		}
		if err := encoder.Encode(env); err != nil {
			log.Debug("failed to stream snapshot", "peer", peerID, "shard_id", shardID, "error", err)
			return
		}
	}
}

func (g *Gossiper) handlePing(peerID string, s Stream) {
	env, err := newEnvelope(MsgPong, struct{}{}, freshNonce(), g.identity)
	if err != nil {
		return
	}
	if err := json.NewEncoder(s).Encode(env); err != nil {
		log.Debug("failed to send pong", "peer", peerID, "error", err)
	}
}

func freshNonce() string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

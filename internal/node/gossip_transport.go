// Package node - libp2p-backed Transport adapter for internal/gossip.
package node

import (
	"context"
	"fmt"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"

	"github.com/driftmesh/driftmesh/internal/gossip"
)

// GossipProtocolPrefix has the same value as gossip.Protocol, the single
// stream protocol ID the Gossiper registers and opens for every shard.
const GossipProtocolPrefix = "/driftmesh/gossip/1.0.0"

// GossipTransport adapts a libp2p host.Host to gossip.Transport, so the
// transport-agnostic Gossiper can run over the node's real P2P connections
// instead of the in-memory transport used in tests.
type GossipTransport struct {
	node *Node
}

// NewGossipTransport wraps n for use as a gossip.Transport.
func NewGossipTransport(n *Node) *GossipTransport {
	return &GossipTransport{node: n}
}

// OpenStream opens a libp2p stream to peerID speaking protocolID, satisfying
// gossip.Transport.
func (t *GossipTransport) OpenStream(ctx context.Context, peerID, protocolID string) (gossip.Stream, error) {
	pid, err := peer.Decode(peerID)
	if err != nil {
		return nil, fmt.Errorf("gossip transport: decode peer %q: %w", peerID, err)
	}
	s, err := t.node.Host().NewStream(ctx, pid, protocol.ID(protocolID))
	if err != nil {
		return nil, fmt.Errorf("gossip transport: open stream to %s: %w", peerID, err)
	}
	return s, nil
}

// SetStreamHandler registers handler for inbound streams on protocolID,
// satisfying gossip.Transport.
func (t *GossipTransport) SetStreamHandler(protocolID string, handler func(peerID string, s gossip.Stream)) {
	t.node.Host().SetStreamHandler(protocol.ID(protocolID), func(s network.Stream) {
		handler(s.Conn().RemotePeer().String(), s)
	})
}

// Peers returns the IDs of currently connected peers, satisfying
// gossip.Transport.
func (t *GossipTransport) Peers() []string {
	peers := t.node.Peers()
	out := make([]string, len(peers))
	for i, p := range peers {
		out[i] = p.String()
	}
	return out
}

// Disconnect forcibly drops the connection to peerID, satisfying
// gossip.Transport.
func (t *GossipTransport) Disconnect(peerID string) error {
	pid, err := peer.Decode(peerID)
	if err != nil {
		return fmt.Errorf("gossip transport: decode peer %q: %w", peerID, err)
	}
	return t.node.Host().Network().ClosePeer(pid)
}

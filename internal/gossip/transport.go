package gossip

import (
	"context"
	"io"
)

// Stream is a single bidirectional message stream to one peer, as handed out
// by a Transport. Implementations close the underlying connection resource
// on Close.
type Stream interface {
	io.ReadWriteCloser
}

// Transport is the capability the gossip layer consumes to talk to peers.
// It deliberately knows nothing about libp2p, Noise, or QUIC — the core is
// agnostic to what sits underneath, per the external-interfaces contract.
// The concrete adapter (backed by a libp2p host) lives outside this package.
type Transport interface {
	// OpenStream opens a new stream to peerID speaking protocolID.
	OpenStream(ctx context.Context, peerID, protocolID string) (Stream, error)
	// SetStreamHandler registers the handler invoked for each inbound stream
	// on protocolID, receiving the remote peer's ID alongside the stream.
	SetStreamHandler(protocolID string, handler func(peerID string, s Stream))
	// Peers returns the IDs of currently connected peers.
	Peers() []string
	// Disconnect forcibly drops the connection to peerID, used when the
	// suspicion counter crosses its threshold.
	Disconnect(peerID string) error
}

// Package rpc - Swap RPC handlers.
//
// Swap initiation itself happens automatically inside core.Context.onTrade
// whenever the matching engine produces a fill (see core.SwapInitiator);
// these handlers expose the rest of the HTLC lifecycle to CLI/wallet
// clients and to the P2P counterparty:
//
//   - swap_types.go:   All param/result type definitions
//   - swap_init.go:    swap_init (manual/recovery trigger, status echo)
//   - swap_funding.go: swap_getAddress, swap_setFunding, swap_checkFunding, swap_fund
//   - swap_signing.go: wallet-address derivation helper used by swap_init
//   - swap_status.go:  swap_status, swap_list
//   - swap_timeout.go: swap_recover, swap_timeout, swap_refund, swap_checkTimeouts
//   - swap_htlc.go:    swap_htlcRevealSecret/GetSecret/Claim/Refund/ExtractSecret
//   - swap_p2p.go:     direct P2P handlers (pubkey exchange, funding info, HTLC messages)
package rpc

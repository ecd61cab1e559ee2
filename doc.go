// Package keypager provides key-set cursor pagination primitives for GORM.
//
// keypager implements two paging styles:
//   - KeysetCursor: seek pagination using comparison operators against the
//     boundary row of the previous page. Scales on large datasets and requires
//     a deterministic ordering, which the library guarantees by completing the
//     client sort with a KeySet of uniquely identifying columns.
//   - OffsetCursor: a compatibility layer over LIMIT/OFFSET for APIs that
//     expose cursor tokens but cannot do true key-set seeks.
//
// Key concepts:
//   - Pager: orchestrates pagination, lookahead, sorting, fetch direction and
//     applying cursors to GORM queries.
//   - KeySet: the uniquely identifying columns appended to any client sort as
//     final tie-breakers, so the effective ordering is a strict total order.
//   - Codec: encodes cursors into opaque tokens, optionally HMAC-signed so
//     tampered tokens fail to decode.
//   - Connection: page output in the edges/pageInfo shape, with per-edge
//     cursors and has-more flags in both directions.
//
// See README for examples and usage details.
package keypager

// Package model defines the snapshot types embedded in ARI event payloads.
//
// Snapshots are point-in-time values describing a server-side object (a
// channel, a bridge, an endpoint, a playback or a recording). They carry no
// back-references and are never updated in place; a newer event carries a
// newer snapshot.
//
// Conventions:
//   - Field names follow the ARI JSON schema; optional wire fields are either
//     pointers (objects, booleans, numbers) or omitempty strings
//   - Timestamps use Timestamp, which accepts the ARI "+0000" zone form
//   - Enumerated string values are typed strings; unknown values are kept as-is
package model

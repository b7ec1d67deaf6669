// Package config loads, normalizes, and validates launcher configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ARENAVISION_PLAYER and
// ARENAVISION_HELPER environment overrides. On first run LoadOrCreate writes
// the embedded sample so users have a documented file to edit.
//
// The [settings] section uses the long-standing launcher key names
// (video-player, cold-start-time, sopcast-stream-port, sopcast-p2p-port).
// Callers turn the loaded Config into the immutable session settings; nothing
// downstream mutates it.
package config

// Package schedule models the broadcast agenda and reads it from the remote
// agenda page.
//
// Parsing is table based: the first table on the page lists one event per
// row (day, time and zone, type, league, name, channels). Channel cells mix
// language tags with numbered feeds; ParseChannels reorders them so each tag
// precedes its feeds, which is the order the session renders.
package schedule

/*
Recorder persists the full trading session as an append-only journal.

# Module
  - writer: buffered segment writer with size and age based rotation
  - reader: sequential record decoding with CRC32-C verification
  - playback: paced or as-fast-as-possible replay with event filtering

# Source
 1. market events from the feed (book updates, trade ticks)
 2. gateway events (status, fills, errors) and strategy commands

# Produce
  - journal segments on disk, one record per event, replayable in order

# Sharded
  - none: one writer per session, single append goroutine
*/
package recorder

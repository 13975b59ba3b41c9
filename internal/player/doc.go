// Package player implements the playback engine.
//
// [Engine] wraps a single [Output], the native audio handle, and keeps the playback session:
// the current track, the transport state and the volume. Operations that need a loaded track
// (play, pause, seek) are silent no-ops without one.
//
// Progress is pull-based: the UI calls [Engine.Tick] on a timer, which samples the output and fires
// the OnProgress callback with a [Progress] snapshot. Loading a track fires OnNowPlaying.
//
// Next and previous wrap around the sequence they are given, so the same engine serves the library,
// playlist and search result views.
//
// The default output ([NewSpeakerOutput]) plays mp3, wav, flac and ogg/vorbis files through
// gopxl/beep. Builds without cgo get an output that reports [shared.ErrAudioUnavailable].
package player

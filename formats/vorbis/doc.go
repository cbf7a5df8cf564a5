// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Samples keep the file's channel count and rate and are returned
// interleaved as float32 in [-1, 1]. ReadSamples only returns whole sample
// frames, so a buffer shorter than one frame reads nothing.
//
// The source reports its length through audio.Durationer when the Ogg
// stream is seekable.
package vorbis

// Package processor drives presets end to end: it checks textures and head
// parts, decides where a preset belongs, writes or copies it there, and
// moves the original into the backup root.
//
// A Processor handles one file at a time and may be shared by workers; a
// Runner enumerates the input root and fans files out to a bounded pool.
package processor

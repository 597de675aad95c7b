// Package filesystem provides the file operations presetcheck performs on
// top of afero: writing outputs, verbatim copies, and relocating originals
// into the backup root.
package filesystem

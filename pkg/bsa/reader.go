// Package bsa reads the file name tables of Bethesda BSA archives
// (version 104, Skyrim LE, and 105, Skyrim SE). Only the directory
// structure is decoded; file contents are never read.
package bsa

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/errors"
)

const (
	VersionSkyrim   uint32 = 104
	VersionSkyrimSE uint32 = 105

	FlagDirectoryNames uint32 = 0x1
	FlagFileNames      uint32 = 0x2

	headerSize     = 36
	fileRecordSize = 16
)

var magic = [4]byte{'B', 'S', 'A', 0}

// Header is the fixed archive header.
type Header struct {
	Magic             [4]byte
	Version           uint32
	FolderOffset      uint32
	ArchiveFlags      uint32
	FolderCount       uint32
	FileCount         uint32
	FolderNamesLength uint32
	FileNamesLength   uint32
	FileFlags         uint16
	Padding           uint16
}

// ReadNames returns every file path in the archive, lowercased, with
// backslash separators, e.g. `actors\character\female\femalehead.dds`.
func ReadNames(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var h Header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveInvalid, "cannot read archive header")
	}
	if h.Magic != magic {
		return nil, errors.New(errors.ErrArchiveInvalid, "not a BSA archive")
	}
	if h.Version != VersionSkyrim && h.Version != VersionSkyrimSE {
		return nil, errors.Newf(errors.ErrArchiveInvalid, "unsupported BSA version %d", h.Version)
	}
	if h.ArchiveFlags&FlagDirectoryNames == 0 || h.ArchiveFlags&FlagFileNames == 0 {
		return nil, errors.New(errors.ErrArchiveInvalid, "archive does not embed file names")
	}
	if h.FolderOffset > headerSize {
		if _, err := br.Discard(int(h.FolderOffset - headerSize)); err != nil {
			return nil, errors.Wrap(err, errors.ErrArchiveInvalid, "truncated archive")
		}
	}

	counts := make([]uint32, h.FolderCount)
	for i := range counts {
		c, err := readFolderRecord(br, h.Version)
		if err != nil {
			return nil, err
		}
		counts[i] = c
	}

	folders := make([]string, h.FolderCount)
	for i, count := range counts {
		name, err := readBZString(br)
		if err != nil {
			return nil, err
		}
		folders[i] = name
		if _, err := br.Discard(int(count) * fileRecordSize); err != nil {
			return nil, errors.Wrap(err, errors.ErrArchiveInvalid, "truncated file records")
		}
	}

	nameBlock := make([]byte, h.FileNamesLength)
	if _, err := io.ReadFull(br, nameBlock); err != nil {
		return nil, errors.Wrap(err, errors.ErrArchiveInvalid, "truncated file name block")
	}
	var fileNames [][]byte
	if len(nameBlock) > 0 {
		fileNames = bytes.Split(bytes.TrimSuffix(nameBlock, []byte{0}), []byte{0})
	}

	total := 0
	for _, c := range counts {
		total += int(c)
	}
	if total != len(fileNames) || uint32(total) != h.FileCount {
		return nil, errors.Newf(errors.ErrArchiveInvalid,
			"file count mismatch: header %d, records %d, names %d", h.FileCount, total, len(fileNames))
	}

	paths := make([]string, 0, total)
	next := 0
	for i, count := range counts {
		for j := 0; j < int(count); j++ {
			paths = append(paths, joinPath(folders[i], string(fileNames[next])))
			next++
		}
	}
	return paths, nil
}

func readFolderRecord(r io.Reader, version uint32) (uint32, error) {
	size := 16
	if version == VersionSkyrimSE {
		size = 24
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errors.Wrap(err, errors.ErrArchiveInvalid, "truncated folder records")
	}
	// hash (8) then file count (4)
	return binary.LittleEndian.Uint32(buf[8:12]), nil
}

// readBZString reads a length-prefixed, zero-terminated string.
func readBZString(r *bufio.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrArchiveInvalid, "truncated folder name")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errors.Wrap(err, errors.ErrArchiveInvalid, "truncated folder name")
	}
	return string(bytes.TrimRight(buf, "\x00")), nil
}

func joinPath(folder, file string) string {
	p := file
	if folder != "" && folder != "." {
		p = folder + `\` + file
	}
	return strings.ToLower(strings.ReplaceAll(p, "/", `\`))
}

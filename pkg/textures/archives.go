package textures

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// ArchiveOptions describes where the game looks for archives.
type ArchiveOptions struct {
	DataRoot string
	// IniFile is the game INI declaring the base archives. Optional.
	IniFile string
	// BaseArchives is used when IniFile is empty or declares nothing.
	BaseArchives []string
	// Plugins are the active plugins in load order.
	Plugins []string
}

// iniArchiveKeys hold comma separated base archive names.
var iniArchiveKeys = []string{"sResourceArchiveList", "sResourceArchiveList2"}

// ApplicableArchives lists, in load priority, the archives present in the
// data folder: base archives first, then for each active plugin
// "<name>.bsa" and "<name> - Textures.bsa". Names match case-insensitively.
func ApplicableArchives(fs afero.Fs, opts ArchiveOptions) ([]string, error) {
	logger := logging.GetLogger("textures.archives")

	present, err := dataFolderFiles(fs, opts.DataRoot)
	if err != nil {
		return nil, err
	}

	base := opts.BaseArchives
	if opts.IniFile != "" {
		fromIni, err := iniArchives(fs, opts.IniFile)
		if err != nil {
			logger.Warn().Err(err).Str("ini", opts.IniFile).Msg("Cannot read game INI, using configured base archives")
		} else if len(fromIni) > 0 {
			base = fromIni
		}
	}

	var candidates []string
	candidates = append(candidates, base...)
	for _, plugin := range opts.Plugins {
		stem := strings.TrimSuffix(plugin, filepath.Ext(plugin))
		candidates = append(candidates, stem+".bsa", stem+" - Textures.bsa")
	}

	var archives []string
	seen := make(map[string]bool)
	for _, name := range candidates {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if actual, ok := present[key]; ok {
			archives = append(archives, filepath.Join(opts.DataRoot, actual))
		}
	}
	logger.Debug().Int("archives", len(archives)).Msg("Resolved applicable archives")
	return archives, nil
}

// iniArchives reads the base archive lists from a game INI.
func iniArchives(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		IgnoreInlineComment:     true,
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return nil, err
	}

	section := cfg.Section("Archive")
	var names []string
	for _, key := range iniArchiveKeys {
		if !section.HasKey(key) {
			continue
		}
		for _, name := range strings.Split(section.Key(key).String(), ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// dataFolderFiles maps lowercase file names in dir to their actual names.
func dataFolderFiles(fs afero.Fs, dir string) (map[string]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files[strings.ToLower(e.Name())] = e.Name()
		}
	}
	return files, nil
}

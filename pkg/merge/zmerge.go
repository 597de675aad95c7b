package merge

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

const (
	// MergeFileName is the zMerge description of one merge.
	MergeFileName = "merge.json"
	// MapFileName holds the per source plugin id renumbering of one merge.
	MapFileName = "map.json"
)

// LoadZMerge walks root for zMerge output folders and adds every merged
// plugin they describe to t. Folders are visited in lexical order so later
// merges of the same source win deterministically.
func LoadZMerge(fs afero.Fs, root string, t *Table) (int, error) {
	logger := logging.GetLogger("merge.zmerge")

	var mergeFiles []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(info.Name(), MergeFileName) {
			mergeFiles = append(mergeFiles, path)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot scan merges under %s", root)
	}
	sort.Strings(mergeFiles)

	added := 0
	for _, mergeFile := range mergeFiles {
		n, err := loadMergeFolder(fs, mergeFile, t)
		if err != nil {
			return added, err
		}
		logger.Debug().Str("merge", mergeFile).Int("plugins", n).Msg("Loaded merge")
		added += n
	}
	return added, nil
}

func loadMergeFolder(fs afero.Fs, mergeFile string, t *Table) (int, error) {
	data, err := afero.ReadFile(fs, mergeFile)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", mergeFile)
	}
	if !gjson.ValidBytes(data) {
		return 0, errors.Newf(errors.ErrMergeInvalid, "%s is not valid JSON", mergeFile)
	}

	doc := gjson.ParseBytes(data)
	target := doc.Get("filename").String()
	if target == "" {
		return 0, errors.Newf(errors.ErrMergeInvalid, "%s has no filename", mergeFile)
	}

	idMaps, err := loadIDMaps(fs, filepath.Join(filepath.Dir(mergeFile), MapFileName))
	if err != nil {
		return 0, err
	}

	added := 0
	var addErr error
	doc.Get("plugins").ForEach(func(_, plugin gjson.Result) bool {
		name := plugin.String()
		if plugin.IsObject() {
			name = plugin.Get("filename").String()
		}
		if name == "" {
			return true
		}
		if addErr = t.Add(name, target, idMaps[strings.ToLower(name)]); addErr != nil {
			return false
		}
		added++
		return true
	})
	if addErr != nil {
		return added, errors.Wrapf(addErr, errors.ErrMergeInvalid, "in %s", mergeFile)
	}
	return added, nil
}

// loadIDMaps reads map.json into lowercase plugin name -> old id -> new id.
// A missing file means no ids were renumbered.
func loadIDMaps(fs afero.Fs, path string) (map[string]map[string]string, error) {
	maps := make(map[string]map[string]string)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return maps, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.Newf(errors.ErrMergeInvalid, "%s is not valid JSON", path)
	}

	gjson.ParseBytes(data).ForEach(func(plugin, ids gjson.Result) bool {
		m := make(map[string]string)
		ids.ForEach(func(from, to gjson.Result) bool {
			m[from.String()] = to.String()
			return true
		})
		maps[strings.ToLower(plugin.String())] = m
		return true
	})
	return maps, nil
}

package config

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// targetsFile is the mapping form of a YAML targets file.
type targetsFile struct {
	Targets []string `yaml:"targets"`
}

// ParseTargets turns raw address strings into addresses, keeping their order.
// Blank entries are ignored.
func ParseTargets(raw []string) ([]common.Address, error) {
	targets := make([]common.Address, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !common.IsHexAddress(entry) {
			return nil, errors.Errorf("invalid target address %q", entry)
		}
		targets = append(targets, common.HexToAddress(entry))
	}
	return targets, nil
}

// LoadTargetsFile reads target addresses from path. YAML and JSON files hold
// either a plain list or a "targets" key; anything else is read one address
// per line with '#' starting a comment.
func LoadTargetsFile(path string) ([]common.Address, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read targets file")
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		raw, err = decodeYAMLTargets(content)
		if err != nil {
			return nil, errors.Wrapf(err, "decode targets file %s", path)
		}
	default:
		raw = scanTextTargets(content)
	}
	return ParseTargets(raw)
}

func decodeYAMLTargets(content []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(content, &list); err == nil {
		return list, nil
	}
	var file targetsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, err
	}
	return file.Targets, nil
}

func scanTextTargets(content []byte) []string {
	var raw []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		raw = append(raw, strings.Split(line, ",")...)
	}
	return raw
}

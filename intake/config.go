package intake

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentsConfig accepts either:
//  1. list form:
//     documents:
//     - format: email
//     path: samples/email_rfq.txt
//     thread_id: thread_123
//  2. mapping form keyed by thread id:
//     documents:
//     thread_123: {format: email, path: samples/email_rfq.txt}
type DocumentsConfig struct {
	Items []DocumentDescriptor
}

func (d *DocumentsConfig) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case yaml.MappingNode:
		items := make([]DocumentDescriptor, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			v := value.Content[i+1]
			threadID := strings.TrimSpace(k.Value)
			if threadID == "" || v.Kind != yaml.MappingNode {
				continue
			}
			var desc DocumentDescriptor
			if err := v.Decode(&desc); err != nil {
				return err
			}
			desc.ThreadID = threadID
			items = append(items, desc)
		}
		d.Items = items
		return nil
	case yaml.SequenceNode:
		var items []DocumentDescriptor
		if err := value.Decode(&items); err != nil {
			return err
		}
		d.Items = items
		return nil
	default:
		return nil
	}
}

type FileConfig struct {
	// Ledger is the path of the persisted JSON ledger.
	Ledger string `yaml:"ledger"`
	// DB is the sqlite archive path. Empty disables archiving.
	DB    string `yaml:"db"`
	Debug bool   `yaml:"debug"`

	// ErrorDir receives input files that could not be read or decoded.
	ErrorDir string `yaml:"error_dir"`

	Documents DocumentsConfig `yaml:"documents"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

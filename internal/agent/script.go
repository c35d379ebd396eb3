package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// scriptFile is the YAML layout of a turn script:
//
//	turns:
//	  - message: Summarize the attached paper
//	    attachments:
//	      - content: https://arxiv.org/pdf/2407.21783
//	        mimeType: application/pdf
type scriptFile struct {
	Turns []struct {
		Message     string `yaml:"message"`
		Attachments []struct {
			Content  string `yaml:"content"`
			MimeType string `yaml:"mimeType"`
		} `yaml:"attachments"`
	} `yaml:"turns"`
}

// ParseScript decodes a YAML turn script.
func ParseScript(data []byte) ([]TurnInput, error) {
	var sf scriptFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse turn script: %w", err)
	}
	if len(sf.Turns) == 0 {
		return nil, fmt.Errorf("parse turn script: no turns")
	}
	inputs := make([]TurnInput, 0, len(sf.Turns))
	for i, t := range sf.Turns {
		if t.Message == "" {
			return nil, fmt.Errorf("parse turn script: turn %d has no message", i+1)
		}
		in := TurnInput{Message: t.Message}
		for _, a := range t.Attachments {
			mime := a.MimeType
			if mime == "" {
				mime = "text/plain"
			}
			in.Attachments = append(in.Attachments, schema.Attachment{Content: a.Content, MimeType: mime})
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// LoadScript reads and decodes a YAML turn script from disk.
func LoadScript(path string) ([]TurnInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read turn script: %w", err)
	}
	return ParseScript(data)
}

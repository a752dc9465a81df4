package files

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/tidwall/gjson"

	"github.com/langtable/langtable/pkg/models"
)

const (
	ProjectVersion   = "1.0.0"
	ProjectExtension = ".mctp"

	// timestamps are ISO 8601 in UTC with milliseconds
	timeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// ProjectData is the editable content of a project
type ProjectData struct {
	TranslateSource *models.OrderedMap    `json:"translateSource"`
	TranslateTarget *models.OrderedMap    `json:"translateTarget"`
	SourceComments  models.Comments       `json:"sourceComments"`
	TargetComments  models.Comments       `json:"targetComments"`
	Glossary        []models.GlossaryTerm `json:"glossary"`
}

// ProjectMetadata describes the language pair and the project itself
type ProjectMetadata struct {
	SourceLang  string   `json:"sourceLang"`
	TargetLang  string   `json:"targetLang"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Project is the single-file bundle holding both tables, their comments and the glossary
type Project struct {
	Version   string          `json:"version"`
	Name      string          `json:"name"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
	Data      ProjectData     `json:"data"`
	Metadata  ProjectMetadata `json:"metadata"`
}

// NewProject creates an empty project stamped with now
func NewProject(name string, now time.Time) *Project {
	stamp := now.UTC().Format(timeLayout)
	return &Project{
		Version:   ProjectVersion,
		Name:      name,
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Data: ProjectData{
			SourceComments: models.Comments{},
			TargetComments: models.Comments{},
			Glossary:       []models.GlossaryTerm{},
		},
		Metadata: ProjectMetadata{
			SourceLang: "en",
			TargetLang: "ja",
			Tags:       []string{},
		},
	}
}

// EncodeProject stamps UpdatedAt with now and encodes p as indented JSON
func EncodeProject(p *Project, now time.Time) ([]byte, error) {
	p.UpdatedAt = now.UTC().Format(timeLayout)
	if p.Data.Glossary == nil {
		p.Data.Glossary = []models.GlossaryTerm{}
	}
	if p.Metadata.Tags == nil {
		p.Metadata.Tags = []string{}
	}
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, models.IOError("encode project", err)
	}
	return append(out, '\n'), nil
}

func invalidProject(format string, args ...any) error {
	return models.IOError("decode project", fmt.Errorf("%w: "+format, append([]any{models.ErrInvalidProject}, args...)...))
}

// DecodeProject parses a project bundle. version, name, createdAt and
// updatedAt must be strings and data must be an object.
func DecodeProject(content []byte) (*Project, error) {
	if !gjson.ValidBytes(content) {
		return nil, invalidProject("not valid JSON")
	}
	root := gjson.ParseBytes(content)
	if !root.IsObject() {
		return nil, invalidProject("not a JSON object")
	}
	for _, field := range []string{"version", "name", "createdAt", "updatedAt"} {
		if v := root.Get(field); v.Type != gjson.String {
			return nil, invalidProject("%s must be a string", field)
		}
	}
	if !root.Get("data").IsObject() {
		return nil, invalidProject("data must be an object")
	}

	var p Project
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, invalidProject("%v", err)
	}
	if p.Data.SourceComments == nil {
		p.Data.SourceComments = models.Comments{}
	}
	if p.Data.TargetComments == nil {
		p.Data.TargetComments = models.Comments{}
	}
	return &p, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ProjectFileName derives a file name from a project name
func ProjectFileName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_") + ProjectExtension
}

// ReadProject loads a project bundle from disk
func ReadProject(path string) (*Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, models.IOError("read project", fmt.Errorf("failed to read %s: %w", path, err))
	}
	p, err := DecodeProject(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// WriteProject encodes p and writes it to path
func WriteProject(path string, p *Project, now time.Time) error {
	content, err := EncodeProject(p, now)
	if err != nil {
		return err
	}
	return writeAtomic(path, content)
}

package files

import (
	"fmt"
	"time"

	"github.com/langtable/langtable/pkg/models"
)

// FileStore reads a source file and reads and writes a target file.
// The target keeps its own format and comments when saved.
type FileStore struct {
	SourcePath string
	TargetPath string
	Options    SaveOptions

	targetComments models.Comments
}

// NewFileStore creates a store over two table files
func NewFileStore(sourcePath, targetPath string, opts SaveOptions) *FileStore {
	return &FileStore{SourcePath: sourcePath, TargetPath: targetPath, Options: opts}
}

func (s *FileStore) SourceMap() (*models.OrderedMap, error) {
	loaded, err := ReadTable(s.SourcePath)
	if err != nil {
		return nil, err
	}
	return loaded.Data, nil
}

// TargetMap loads the target file. A missing target file is an empty table.
func (s *FileStore) TargetMap() (*models.OrderedMap, error) {
	loaded, err := ReadTableOrEmpty(s.TargetPath)
	if err != nil {
		return nil, err
	}
	s.targetComments = loaded.Comments
	return loaded.Data, nil
}

func (s *FileStore) SetTargetMap(m *models.OrderedMap) error {
	return WriteTable(s.TargetPath, m, s.targetComments, s.Options)
}

// ProjectStore keeps both tables and the glossary in one project bundle.
// Every change rewrites the bundle.
type ProjectStore struct {
	path    string
	project *Project
	now     func() time.Time
}

// OpenProjectStore reads the bundle at path
func OpenProjectStore(path string) (*ProjectStore, error) {
	p, err := ReadProject(path)
	if err != nil {
		return nil, err
	}
	return &ProjectStore{path: path, project: p, now: time.Now}, nil
}

// Path returns the bundle location
func (s *ProjectStore) Path() string {
	return s.path
}

// Project returns the loaded bundle
func (s *ProjectStore) Project() *Project {
	return s.project
}

func (s *ProjectStore) SourceMap() (*models.OrderedMap, error) {
	if s.project.Data.TranslateSource == nil {
		return nil, models.IOError("load project source", fmt.Errorf("%w in %s", models.ErrNoSource, s.path))
	}
	return s.project.Data.TranslateSource.Clone(), nil
}

func (s *ProjectStore) TargetMap() (*models.OrderedMap, error) {
	return s.project.Data.TranslateTarget.Clone(), nil
}

func (s *ProjectStore) SetTargetMap(m *models.OrderedMap) error {
	prev := s.project.Data.TranslateTarget
	s.project.Data.TranslateTarget = m.Clone()
	if err := s.save(); err != nil {
		s.project.Data.TranslateTarget = prev
		return err
	}
	return nil
}

func (s *ProjectStore) Glossary() ([]models.GlossaryTerm, error) {
	out := make([]models.GlossaryTerm, len(s.project.Data.Glossary))
	copy(out, s.project.Data.Glossary)
	return out, nil
}

func (s *ProjectStore) SetGlossary(terms []models.GlossaryTerm) error {
	prev := s.project.Data.Glossary
	s.project.Data.Glossary = append([]models.GlossaryTerm{}, terms...)
	if err := s.save(); err != nil {
		s.project.Data.Glossary = prev
		return err
	}
	return nil
}

func (s *ProjectStore) save() error {
	prev := s.project.UpdatedAt
	if err := WriteProject(s.path, s.project, s.now()); err != nil {
		s.project.UpdatedAt = prev
		return err
	}
	return nil
}

// Pack builds a project from a source and a target table file
func Pack(name, sourcePath, targetPath string, now time.Time) (*Project, error) {
	source, err := ReadTable(sourcePath)
	if err != nil {
		return nil, err
	}
	target, err := ReadTableOrEmpty(targetPath)
	if err != nil {
		return nil, err
	}

	p := NewProject(name, now)
	p.Data.TranslateSource = source.Data
	p.Data.TranslateTarget = target.Data
	p.Data.SourceComments = source.Comments
	p.Data.TargetComments = target.Comments
	return p, nil
}

// Unpack writes a project's tables to two files, each in the format of its extension
func Unpack(p *Project, sourcePath, targetPath string, opts SaveOptions) error {
	if p.Data.TranslateSource == nil {
		return models.IOError("unpack project", models.ErrNoSource)
	}
	if err := WriteTable(sourcePath, p.Data.TranslateSource, p.Data.SourceComments, opts); err != nil {
		return err
	}
	return WriteTable(targetPath, p.Data.TranslateTarget, p.Data.TargetComments, opts)
}

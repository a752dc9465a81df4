package files

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/langtable/langtable/pkg/models"
)

// Loaded is a parsed string table file
type Loaded struct {
	Data     *models.OrderedMap
	Comments models.Comments
}

// Load parses file contents in the format named by ext (".json" or ".lang").
// JSON files carry no comments.
func Load(contents []byte, ext string) (Loaded, error) {
	format, err := ParseFormat(ext)
	if err != nil {
		return Loaded{}, err
	}
	switch format {
	case FormatLang:
		data, comments := parseLang(string(contents))
		return Loaded{Data: data, Comments: comments}, nil
	default:
		data, err := models.ParseOrderedJSON(contents)
		if err != nil {
			return Loaded{}, models.IOError("parse json", err)
		}
		return Loaded{Data: data, Comments: models.Comments{}}, nil
	}
}

// SaveOptions tunes Save
type SaveOptions struct {
	// SortLangKeys writes .lang keys in sorted order instead of table order
	SortLangKeys bool
}

// DefaultSaveOptions sorts .lang keys
var DefaultSaveOptions = SaveOptions{SortLangKeys: true}

// Save encodes data in format. Comments are only written for .lang and may be nil.
func Save(data *models.OrderedMap, comments models.Comments, format Format, opts SaveOptions) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(data)
	case FormatLang:
		return encodeLang(data, comments, opts.SortLangKeys), nil
	default:
		return nil, models.IOError("save", fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, string(format)))
	}
}

// encodeJSON writes a flat object with 2-space indentation in table order
func encodeJSON(data *models.OrderedMap) ([]byte, error) {
	keys := data.Keys()
	if len(keys) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range keys {
		value, _ := data.Get(key)
		buf.WriteString("  ")
		if err := models.AppendJSONString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := models.AppendJSONString(&buf, value); err != nil {
			return nil, err
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// ReadTable loads a string table file from disk
func ReadTable(path string) (Loaded, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Loaded{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, models.IOError("read table", fmt.Errorf("failed to read %s: %w", path, err))
	}
	loaded, err := Load(content, string(format))
	if err != nil {
		return Loaded{}, fmt.Errorf("%s: %w", path, err)
	}
	return loaded, nil
}

// ReadTableOrEmpty is ReadTable but treats a missing file as an empty table
func ReadTableOrEmpty(path string) (Loaded, error) {
	loaded, err := ReadTable(path)
	if errors.Is(err, os.ErrNotExist) {
		return Loaded{Data: models.NewOrderedMap(), Comments: models.Comments{}}, nil
	}
	return loaded, err
}

// WriteTable encodes a table in the format given by path's extension and writes it atomically
func WriteTable(path string, data *models.OrderedMap, comments models.Comments, opts SaveOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	content, err := Save(data, comments, format, opts)
	if err != nil {
		return err
	}
	return writeAtomic(path, content)
}

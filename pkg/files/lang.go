package files

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/langtable/langtable/pkg/models"
)

const (
	keyCommentPrefix  = "key:"
	lineCommentPrefix = "line:"
)

// parseLang reads key=value lines. A "#" comment directly followed by a
// key=value line is attached to that key; any other comment is kept under
// its 0-based line index. Blank lines and lines without "=" are skipped.
func parseLang(content string) (*models.OrderedMap, models.Comments) {
	data := models.NewOrderedMap()
	comments := models.Comments{}

	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			text := strings.TrimSpace(line[1:])
			next := ""
			if i+1 < len(lines) {
				next = strings.TrimSpace(lines[i+1])
			}
			if next != "" && strings.Contains(next, "=") && !strings.HasPrefix(next, "#") {
				key := strings.TrimSpace(next[:strings.Index(next, "=")])
				comments[keyCommentPrefix+key] = text
			} else {
				comments[lineCommentPrefix+strconv.Itoa(i)] = text
			}
			continue
		}

		if sep := strings.Index(line, "="); sep >= 0 {
			data.Set(strings.TrimSpace(line[:sep]), strings.TrimSpace(line[sep+1:]))
		}
	}
	return data, comments
}

// lineComments returns the free-standing comments ordered by line number
func lineComments(comments models.Comments) []string {
	type lineComment struct {
		line int
		text string
	}
	var found []lineComment
	for k, v := range comments {
		n, ok := strings.CutPrefix(k, lineCommentPrefix)
		if !ok {
			continue
		}
		line, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		found = append(found, lineComment{line: line, text: v})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].line < found[j].line })

	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.text
	}
	return out
}

// encodeLang writes data as key=value lines, each preceded by its attached
// comment, followed by the free-standing comments. Keys are sorted when sorted is set.
func encodeLang(data *models.OrderedMap, comments models.Comments, sorted bool) []byte {
	keys := data.Keys()
	if sorted {
		sort.Strings(keys)
	}

	var b strings.Builder
	for _, key := range keys {
		if c, ok := comments[keyCommentPrefix+key]; ok && c != "" {
			fmt.Fprintf(&b, "# %s\n", c)
		}
		value, _ := data.Get(key)
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}

	if trailing := lineComments(comments); len(trailing) > 0 {
		if len(keys) > 0 {
			b.WriteString("\n")
		}
		for _, c := range trailing {
			fmt.Fprintf(&b, "# %s\n", c)
		}
	}
	return []byte(b.String())
}

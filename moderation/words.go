package moderation

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed words/*.txt
var wordFiles embed.FS

// EmbeddedWords returns the wordlist shipped with the binary, one word per
// line. Deployments extend it through configuration rather than rebuilds.
func EmbeddedWords() ([]string, error) {
	var words []string
	err := fs.WalkDir(wordFiles, "words", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".txt") {
			return nil
		}
		data, err := wordFiles.ReadFile(path.Join("words", d.Name()))
		if err != nil {
			return err
		}
		words = append(words, ParseWords(string(data))...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

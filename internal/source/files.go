package source

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/msto63/taletekst/internal/textio"
	"github.com/msto63/taletekst/pkg/core/config"
	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Column names of the manual filtering CSV
const (
	ColumnSentence = "sentence"
	ColumnUsername = "username"
	ColumnKeep     = "keep"
	ColumnIndex    = "index"
)

func newArticles(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	if err := require(name, "path", sc.Path); err != nil {
		return nil, err
	}
	path := deps.Config.RawPath(sc.Path)
	return BuilderFunc(func(ctx context.Context) ([]string, error) {
		articles, err := textio.ReadLines(path)
		if err != nil {
			return nil, err
		}
		return deps.Extractor.Extract(articles), nil
	}), nil
}

func newLines(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	if err := require(name, "path", sc.Path); err != nil {
		return nil, err
	}
	path := deps.Config.RawPath(sc.Path)
	return BuilderFunc(func(ctx context.Context) ([]string, error) {
		return textio.ReadLines(path)
	}), nil
}

func newAnnotations(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	if err := require(name, "path", sc.Path); err != nil {
		return nil, err
	}
	path := deps.Config.RawPath(sc.Path)
	return BuilderFunc(func(ctx context.Context) ([]string, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, tterr.Wrap(err, tterr.CodeNotFound,
				"annotation file not found, run the annotate command first").WithDetail("path", path)
		}
		defer f.Close()
		return KeptSentences(f)
	}), nil
}

// KeptSentences reads a manual filtering CSV and returns the sentences that
// every annotator kept
func KeptSentences(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeSourceFailed, "failed to read annotation header")
	}

	sentenceCol, keepCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case ColumnSentence:
			sentenceCol = i
		case ColumnKeep:
			keepCol = i
		}
	}
	if sentenceCol < 0 || keepCol < 0 {
		return nil, tterr.New(tterr.CodeSourceFailed, "annotation file needs sentence and keep columns")
	}

	var kept []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, tterr.Wrap(err, tterr.CodeSourceFailed, "failed to read annotation row")
		}
		if AllKept(record[keepCol]) {
			kept = append(kept, record[sentenceCol])
		}
	}
	return kept, nil
}

// AllKept reports whether every comma separated answer is "y"
func AllKept(answers string) bool {
	parts := strings.Split(answers, ",")
	for _, p := range parts {
		if strings.TrimSpace(p) != "y" {
			return false
		}
	}
	return len(parts) > 0
}

package sentence

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Splitter divides a single line of text into sentences
type Splitter interface {
	Split(text string) []string
}

// NewSplitter returns a Punkt splitter trained on modelPath, or the
// built-in Danish model when modelPath is empty
func NewSplitter(modelPath string) (Splitter, error) {
	if modelPath == "" {
		return Danish()
	}
	return LoadPunkt(modelPath)
}

// PunktSplitter splits sentences with a trained Punkt model
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// LoadPunkt loads an NLTK compatible Punkt model in JSON form
func LoadPunkt(path string) (*PunktSplitter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeIO, "failed to read punkt model").
			WithDetail("path", path)
	}
	return NewPunktSplitter(data)
}

// NewPunktSplitter creates a splitter from raw Punkt training data
func NewPunktSplitter(training []byte) (*PunktSplitter, error) {
	storage, err := sentences.LoadTraining(training)
	if err != nil {
		return nil, tterr.Wrap(err, tterr.CodeInvalidConfig, "invalid punkt model")
	}
	return &PunktSplitter{tokenizer: sentences.NewSentenceTokenizer(storage)}, nil
}

// Split splits text into sentences
func (p *PunktSplitter) Split(text string) []string {
	tokens := p.tokenizer.Tokenize(text)
	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if s := strings.TrimSpace(t.Text); s != "" {
			result = append(result, s)
		}
	}
	return result
}

//go:embed data/danish.json
var danishModel []byte

var danish = sync.OnceValues(func() (*PunktSplitter, error) {
	return NewPunktSplitter(danishModel)
})

// Danish returns the splitter for the bundled NLTK Danish Punkt model. The
// model is parsed once and shared; Split is safe for concurrent use.
func Danish() (*PunktSplitter, error) {
	return danish()
}

// DefaultSplitter returns the Danish splitter. It panics if the bundled
// model cannot be parsed.
func DefaultSplitter() *PunktSplitter {
	s, err := Danish()
	if err != nil {
		panic("sentence: bundled danish model: " + err.Error())
	}
	return s
}

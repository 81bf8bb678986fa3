package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sanonone/lexvek/pkg/core"
	"gonum.org/v1/gonum/mat"
)

// ErrMalformedText indicates a text model file that does not follow the
// word2vec layout.
var ErrMalformedText = errors.New("malformed text model")

// WriteText writes the model in the word2vec text format: a "V k" header
// line followed by one line per word carrying its k coordinates. The format
// is an interchange surface, readable by gensim and most embedding tools.
func WriteText(w io.Writer, model *core.Model) error {
	bw := bufio.NewWriter(w)
	rows, cols := model.Vectors.Dims()
	if _, err := fmt.Fprintf(bw, "%d %d\n", rows, cols); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		if _, err := bw.WriteString(model.Vocab.Word(i)); err != nil {
			return err
		}
		row := model.Vectors.RawRowView(i)
		for _, v := range row {
			if _, err := bw.WriteString(" " + strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText reads a word2vec text model from r.
//
// Vectors are taken verbatim: unlike the binary snapshot, a text file is an
// interchange format and may legitimately carry unnormalized vectors. The
// text layout has no room for occurrence counts or training parameters, so
// those fields come back zeroed.
func ReadText(r io.Reader) (*core.Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: missing header line", ErrMalformedText)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("%w: header %q", ErrMalformedText, scanner.Text())
	}
	v, err := strconv.Atoi(header[0])
	if err != nil || v < 1 {
		return nil, fmt.Errorf("%w: word count %q", ErrMalformedText, header[0])
	}
	k, err := strconv.Atoi(header[1])
	if err != nil || k < 1 {
		return nil, fmt.Errorf("%w: dimension count %q", ErrMalformedText, header[1])
	}

	words := make([]string, 0, v)
	vectors := mat.NewDense(v, k, nil)
	for line := 1; scanner.Scan(); line++ {
		if line > v {
			return nil, fmt.Errorf("%w: more than %d vector lines", ErrMalformedText, v)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != k+1 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedText, line, len(fields), k+1)
		}
		words = append(words, fields[0])
		row := vectors.RawRowView(line - 1)
		for j, field := range fields[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrMalformedText, line, j+1, err)
			}
			row[j] = val
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) != v {
		return nil, fmt.Errorf("%w: header declares %d words, found %d", ErrMalformedText, v, len(words))
	}

	vocab, err := core.NewVocabulary(words, nil)
	if err != nil {
		return nil, fmt.Errorf("rebuilding vocabulary: %w", err)
	}
	return &core.Model{
		Vocab:      vocab,
		Vectors:    vectors,
		Dimensions: k,
	}, nil
}

// SaveText writes the model to path in the word2vec text format, going
// through a temporary sibling so readers never observe a partial file.
func SaveText(path string, model *core.Model) error {
	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return err
	}
	defer os.Remove(tempPath)

	if err := WriteText(f, model); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// LoadText reads a word2vec text model from path.
func LoadText(path string) (*core.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadText(f)
}

// Load reads a model from path, picking the format by extension: ".lvk"
// loads the binary snapshot, everything else the text format.
func Load(path string) (*core.Model, error) {
	if strings.HasSuffix(path, ".lvk") {
		return LoadBinary(path)
	}
	return LoadText(path)
}

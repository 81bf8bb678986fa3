// Package persistence reads and writes trained models in two formats: a
// CRC-framed binary snapshot (.lvk) and the word2vec-compatible text format.
package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/sanonone/lexvek/pkg/core"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

// Constants for the binary snapshot format.
const (
	// MagicByte is the marker identifying a model snapshot. It lets a
	// reader reject foreign files before touching the payload.
	MagicByte = 0xA7

	// FormatVersion is bumped whenever the payload layout changes.
	FormatVersion = 0x01

	// HeaderSize is the fixed size of the snapshot metadata:
	// 1 byte (Magic) + 1 byte (Version) + 1 byte (Precision) + 1 byte
	// (reserved) + 4 bytes (Length) + 4 bytes (CRC32) = 12 bytes.
	HeaderSize = 12
)

// Precision selects how vector components are stored on disk.
type Precision string

const (
	// Float32 stores each component in 4 bytes.
	Float32 Precision = "float32"
	// Float16 stores each component in 2 bytes, trading a little accuracy
	// for half the file size.
	Float16 Precision = "float16"
)

const (
	precisionFloat32Byte = 0x01
	precisionFloat16Byte = 0x02
)

var (
	// ErrInvalidMagic indicates the file is not a model snapshot.
	ErrInvalidMagic = errors.New("invalid magic byte")
	// ErrUnsupportedVersion indicates a snapshot written by a newer format
	// revision than this reader understands.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrUnsupportedPrecision indicates an unknown vector encoding.
	ErrUnsupportedPrecision = errors.New("unsupported vector precision")
	// ErrChecksumMismatch indicates data corruption within the payload.
	ErrChecksumMismatch = errors.New("crc32 checksum mismatch")
	// ErrIncompleteSnapshot indicates the file ended abruptly.
	ErrIncompleteSnapshot = errors.New("incomplete snapshot")
)

func precisionToByte(p Precision) (byte, error) {
	switch p {
	case Float32:
		return precisionFloat32Byte, nil
	case Float16:
		return precisionFloat16Byte, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedPrecision, p)
	}
}

func precisionFromByte(b byte) (Precision, error) {
	switch b {
	case precisionFloat32Byte:
		return Float32, nil
	case precisionFloat16Byte:
		return Float16, nil
	default:
		return "", fmt.Errorf("%w: 0x%02x", ErrUnsupportedPrecision, b)
	}
}

// EncodeModel writes the model to w as a single framed snapshot.
// Frame format: [Magic(1)][Version(1)][Precision(1)][Reserved(1)][Length(4)][CRC(4)][Payload(N)]
func EncodeModel(w io.Writer, model *core.Model, precision Precision) error {
	precByte, err := precisionToByte(precision)
	if err != nil {
		return err
	}
	payload, err := encodePayload(model, precision)
	if err != nil {
		return err
	}

	header := make([]byte, HeaderSize)
	header[0] = MagicByte
	header[1] = FormatVersion
	header[2] = precByte
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[8:12], crc32.ChecksumIEEE(payload))

	if _, err := w.Write(header); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	return nil
}

// DecodeModel reads a framed snapshot from r, validating the magic byte,
// version and CRC32 checksum before decoding.
//
// Vector rows are rescaled to unit norm after decoding, undoing the small
// drift that quantized storage introduces.
func DecodeModel(r io.Reader) (*core.Model, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrIncompleteSnapshot
	}
	if header[0] != MagicByte {
		return nil, ErrInvalidMagic
	}
	if header[1] != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header[1])
	}
	precision, err := precisionFromByte(header[2])
	if err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(header[4:8])
	expectedCRC := binary.LittleEndian.Uint32(header[8:12])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, ErrIncompleteSnapshot
	}
	if crc32.ChecksumIEEE(payload) != expectedCRC {
		return nil, ErrChecksumMismatch
	}

	return decodePayload(payload, precision)
}

// SaveBinary writes the model snapshot to path. The file is written to a
// temporary sibling first and renamed into place, so a crash mid-write
// never leaves a truncated snapshot behind.
func SaveBinary(path string, model *core.Model, precision Precision) error {
	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return err
	}
	defer os.Remove(tempPath)

	if err := EncodeModel(f, model, precision); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// LoadBinary reads a model snapshot from path.
func LoadBinary(path string) (*core.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeModel(f)
}

// --- PAYLOAD LAYOUT ---
//
// All integers are uint32 little endian.
//
//	runID      16 bytes (zeroed when the model has none)
//	window     4 bytes
//	minCount   4 bytes
//	V          4 bytes
//	k          4 bytes
//	V words:   length, raw bytes, occurrence count
//	V*k values (4 bytes each for float32, 2 for float16), row major

func encodePayload(model *core.Model, precision Precision) ([]byte, error) {
	rows, cols := model.Vectors.Dims()
	if rows != model.Vocab.Size() {
		return nil, fmt.Errorf("vocabulary has %d words but the matrix has %d rows", model.Vocab.Size(), rows)
	}

	var buf bytes.Buffer

	runID := uuid.Nil
	if parsed, err := uuid.Parse(model.RunID); err == nil {
		runID = parsed
	}
	buf.Write(runID[:])

	for _, v := range []uint32{
		uint32(model.WindowSize),
		uint32(model.MinCount),
		uint32(rows),
		uint32(cols),
	} {
		var scratch [4]byte
		binary.LittleEndian.PutUint32(scratch[:], v)
		buf.Write(scratch[:])
	}

	var scratch [4]byte
	for i := 0; i < rows; i++ {
		word := model.Vocab.Word(i)
		binary.LittleEndian.PutUint32(scratch[:], uint32(len(word)))
		buf.Write(scratch[:])
		buf.WriteString(word)
		binary.LittleEndian.PutUint32(scratch[:], uint32(model.Vocab.CountAt(i)))
		buf.Write(scratch[:])
	}

	for i := 0; i < rows; i++ {
		row := model.Vectors.RawRowView(i)
		for _, v := range row {
			switch precision {
			case Float32:
				binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(float32(v)))
				buf.Write(scratch[:])
			case Float16:
				binary.LittleEndian.PutUint16(scratch[:2], float16.Fromfloat32(float32(v)).Bits())
				buf.Write(scratch[:2])
			}
		}
	}

	return buf.Bytes(), nil
}

func decodePayload(payload []byte, precision Precision) (*core.Model, error) {
	r := bytes.NewReader(payload)

	var runID uuid.UUID
	if _, err := io.ReadFull(r, runID[:]); err != nil {
		return nil, ErrIncompleteSnapshot
	}

	var window, minCount, v, k uint32
	for _, dst := range []*uint32{&window, &minCount, &v, &k} {
		if err := readUint32(r, dst); err != nil {
			return nil, err
		}
	}
	if v == 0 || k == 0 {
		return nil, fmt.Errorf("snapshot declares a %dx%d matrix", v, k)
	}

	words := make([]string, v)
	counts := make([]int, v)
	for i := range words {
		var wordLen uint32
		if err := readUint32(r, &wordLen); err != nil {
			return nil, err
		}
		raw := make([]byte, wordLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, ErrIncompleteSnapshot
		}
		words[i] = string(raw)
		var count uint32
		if err := readUint32(r, &count); err != nil {
			return nil, err
		}
		counts[i] = int(count)
	}

	vectors := mat.NewDense(int(v), int(k), nil)
	for i := 0; i < int(v); i++ {
		row := vectors.RawRowView(i)
		for j := range row {
			switch precision {
			case Float32:
				var bits uint32
				if err := readUint32(r, &bits); err != nil {
					return nil, err
				}
				row[j] = float64(math.Float32frombits(bits))
			case Float16:
				var scratch [2]byte
				if _, err := io.ReadFull(r, scratch[:]); err != nil {
					return nil, ErrIncompleteSnapshot
				}
				row[j] = float64(float16.Frombits(binary.LittleEndian.Uint16(scratch[:])).Float32())
			}
		}
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after payload", r.Len())
	}

	vocab, err := core.NewVocabulary(words, counts)
	if err != nil {
		return nil, fmt.Errorf("rebuilding vocabulary: %w", err)
	}
	normalized, err := core.NormalizeRows(vectors)
	if err != nil {
		return nil, fmt.Errorf("restoring unit norms: %w", err)
	}

	model := &core.Model{
		Vocab:      vocab,
		Vectors:    normalized,
		WindowSize: int(window),
		Dimensions: int(k),
		MinCount:   int(minCount),
	}
	if runID != uuid.Nil {
		model.RunID = runID.String()
	}
	return model, nil
}

func readUint32(r io.Reader, dst *uint32) error {
	var scratch [4]byte
	if _, err := io.ReadFull(r, scratch[:]); err != nil {
		return ErrIncompleteSnapshot
	}
	*dst = binary.LittleEndian.Uint32(scratch[:])
	return nil
}

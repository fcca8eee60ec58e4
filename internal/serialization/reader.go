package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/synap-ml/synap/internal/tensor"
)

// File is a parsed, validated .synap file.
type File struct {
	header Header
	data   []byte // tensor data section
}

// ReadFile reads and validates a .synap file.
//
// Magic, version, checksum and tensor offsets are all verified before any
// tensor data is exposed.
func ReadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	if len(raw) < 4+4+8+ChecksumSize {
		return nil, ErrTruncated
	}
	if string(raw[:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	version := binary.LittleEndian.Uint32(raw[4:8])
	if version != FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "got %d, expected %d", version, FormatVersion)
	}
	headerSize := binary.LittleEndian.Uint64(raw[8:16])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	payload := raw[:len(raw)-ChecksumSize]
	var stored [ChecksumSize]byte
	copy(stored[:], raw[len(raw)-ChecksumSize:])
	if sha256.Sum256(payload) != stored {
		return nil, ErrChecksumMismatch
	}

	headerEnd := int64(16) + int64(headerSize)
	if headerEnd > int64(len(payload)) {
		return nil, ErrTruncated
	}
	var header Header
	if err := json.Unmarshal(raw[16:headerEnd], &header); err != nil {
		return nil, errors.Wrap(err, "parse header JSON")
	}

	dataOffset := headerEnd + (HeaderAlignment-headerEnd%HeaderAlignment)%HeaderAlignment
	if dataOffset > int64(len(payload)) {
		return nil, ErrTruncated
	}
	data := payload[dataOffset:]

	if err := validateTensors(header.Tensors, int64(len(data))); err != nil {
		return nil, err
	}

	return &File{header: header, data: data}, nil
}

// validateTensors checks dtype, bounds and non-overlap of all tensor metas.
func validateTensors(metas []TensorMeta, dataSize int64) error {
	sorted := make([]TensorMeta, len(metas))
	copy(sorted, metas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	var prevEnd int64
	for _, m := range sorted {
		if m.DType != "float32" {
			return errors.Wrapf(ErrUnsupportedDType, "tensor %q has dtype %q", m.Name, m.DType)
		}
		if m.Offset < 0 || m.Size < 0 || m.Offset+m.Size > dataSize {
			return errors.Wrapf(ErrOutOfBounds, "tensor %q", m.Name)
		}
		if expected := int64(tensor.Shape(m.Shape).NumElements()) * 4; expected != m.Size {
			return errors.Errorf("tensor %q: size %d does not match shape %v", m.Name, m.Size, m.Shape)
		}
		if m.Offset < prevEnd {
			return errors.Wrapf(ErrOffsetOverlap, "tensor %q", m.Name)
		}
		prevEnd = m.Offset + m.Size
	}
	return nil
}

// Header returns the parsed file header.
func (f *File) Header() Header {
	return f.header
}

// StateDict decodes every tensor in the file into a name-keyed map.
func (f *File) StateDict() (map[string]*tensor.Tensor, error) {
	stateDict := make(map[string]*tensor.Tensor, len(f.header.Tensors))
	for _, m := range f.header.Tensors {
		t := tensor.New(tensor.Shape(m.Shape))
		data := t.Data()
		blob := f.data[m.Offset : m.Offset+m.Size]
		for i := range data {
			data[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4 : i*4+4]))
		}
		stateDict[m.Name] = t
	}
	return stateDict, nil
}

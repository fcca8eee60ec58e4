package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/synap-ml/synap/internal/tensor"
)

const synapVersion = "0.1.0"

// WriteFile writes a state dictionary to a .synap file.
//
// header.Tensors and the format bookkeeping fields are filled in here;
// callers only populate Checkpoint metadata. Tensors are laid out in
// lexicographic name order, so the same state always serializes to the same
// bytes.
func WriteFile(path string, stateDict map[string]*tensor.Tensor, header Header) (err error) {
	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		names = append(names, name)
	}
	sort.Strings(names)

	header.FormatVersion = FormatVersion
	header.SynapVersion = synapVersion
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	header.Tensors = make([]TensorMeta, 0, len(names))

	var offset int64
	for _, name := range names {
		t := stateDict[name]
		size := int64(t.NumElements()) * 4
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  "float32",
			Shape:  []int(t.Shape()),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "marshal header")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create file")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Everything before the trailing checksum goes through the hash too.
	hash := sha256.New()
	w := io.MultiWriter(file, hash)

	if _, err := w.Write([]byte(MagicBytes)); err != nil {
		return errors.Wrap(err, "write magic")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return errors.Wrap(err, "write version")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "write header")
	}

	pos := int64(4+4+8) + int64(len(headerJSON))
	if padding := (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment; padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return errors.Wrap(err, "write padding")
		}
	}

	buf := make([]byte, 4)
	for _, name := range names {
		for _, v := range stateDict[name].Data() {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := w.Write(buf); err != nil {
				return errors.Wrapf(err, "write tensor %s", name)
			}
		}
	}

	if _, err := file.Write(hash.Sum(nil)); err != nil {
		return errors.Wrap(err, "write checksum")
	}
	return nil
}

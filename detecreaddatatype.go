package lightcurve

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

// Checked in this order so that the 2-byte zlib headers can never shadow a
// longer signature.
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType attempts to detect the data type of a stream from its leading
// bytes. Byte code signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
Outer:
	for _, candidate := range byteCodeSigs {
		if len(head) < len(candidate.sig) {
			continue
		}
		for position := range candidate.sig {
			if head[position] != candidate.sig[position] {
				continue Outer
			}
		}
		return candidate.dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser peeks at the head of rc and, if it carries a known
// compression signature, wraps it in the matching decompressor. Closing the
// result closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, DataType, error) {
	br := bufio.NewReader(rc)

	// Peek returns what it could along with io.EOF for tiny inputs, which is
	// fine: they are simply treated as uncompressed.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, DataTypeInvalid, pfx.Err(err)
	}

	dt := DetectDataType(head)

	var r io.Reader
	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		r = gz
	case DataTypeZip:
		// Only the first member of the archive is read.
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, dt, pfx.Err(err)
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		r = reader
	case DataTypeZlib:
		z, err := zlib.NewReader(br)
		if err != nil {
			return nil, dt, pfx.Err(err)
		}
		r = z
	default:
		r = br
	}

	return &readCloserFaker{Reader: r, closer: rc}, dt, nil
}

// readCloserFaker "upgrades" decompressing readers so that closing them closes
// the underlying source.
type readCloserFaker struct {
	io.Reader
	closer io.Closer
}

func (c *readCloserFaker) Close() error {
	return c.closer.Close()
}

package exifreader

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electronjoe/geotag/internal/geotag"
)

type ifdEntry struct {
	tag, typ uint16
	count    uint32
	value    [4]byte
}

// gpsTIFF builds a little-endian TIFF whose IFD0 only points at a GPS IFD
// holding latitude 10°S, longitude 20°E and altitude 5 above sea level.
func gpsTIFF(t *testing.T) []byte {
	t.Helper()
	const (
		ifd0Offset = 8
		gpsOffset  = ifd0Offset + 2 + 12 + 4
		gpsEntries = 6
		dataOffset = gpsOffset + 2 + gpsEntries*12 + 4
	)
	le := binary.LittleEndian
	off := func(n uint32) (v [4]byte) {
		le.PutUint32(v[:], n)
		return v
	}

	buf := &bytes.Buffer{}
	write := func(v any) {
		require.NoError(t, binary.Write(buf, le, v))
	}
	writeIFD := func(entries []ifdEntry) {
		write(uint16(len(entries)))
		for _, e := range entries {
			write(e.tag)
			write(e.typ)
			write(e.count)
			write(e.value)
		}
		write(uint32(0))
	}

	buf.WriteString("II")
	write(uint16(42))
	write(uint32(ifd0Offset))
	writeIFD([]ifdEntry{{tag: 0x8825, typ: 4, count: 1, value: off(gpsOffset)}})
	writeIFD([]ifdEntry{
		{tag: 1, typ: 2, count: 2, value: [4]byte{'S'}},
		{tag: 2, typ: 5, count: 3, value: off(dataOffset)},
		{tag: 3, typ: 2, count: 2, value: [4]byte{'E'}},
		{tag: 4, typ: 5, count: 3, value: off(dataOffset + 24)},
		{tag: 5, typ: 1, count: 1, value: [4]byte{0}},
		{tag: 6, typ: 5, count: 1, value: off(dataOffset + 48)},
	})
	require.Equal(t, dataOffset, buf.Len())
	for _, r := range [][2]uint32{{10, 1}, {0, 1}, {0, 1}, {20, 1}, {0, 1}, {0, 1}, {5, 1}} {
		write(r)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

// withPNGChunk inserts a chunk right after IHDR.
func withPNGChunk(pngData []byte, typ string, data []byte) []byte {
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	chunk := &bytes.Buffer{}
	_ = binary.Write(chunk, binary.BigEndian, uint32(len(data)))
	chunk.WriteString(typ)
	chunk.Write(data)
	_ = binary.Write(chunk, binary.BigEndian, crc32.ChecksumIEEE(append([]byte(typ), data...)))

	out := append([]byte{}, pngData[:ihdrEnd]...)
	out = append(out, chunk.Bytes()...)
	return append(out, pngData[ihdrEnd:]...)
}

func riffChunk(fourcc string, data []byte) []byte {
	out := []byte(fourcc)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, data...)
	if len(data)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// webpWithExif builds an extended-format 1x1 WebP header followed by an EXIF chunk.
func webpWithExif(exifData []byte) []byte {
	body := []byte("WEBP")
	body = append(body, riffChunk("VP8X", []byte{0x08, 0, 0, 0, 0, 0, 0, 0, 0, 0})...)
	if exifData != nil {
		body = append(body, riffChunk("EXIF", exifData)...)
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func assertExampleBlock(t *testing.T, tags geotag.Tags) {
	t.Helper()
	require.NotNil(t, tags)
	block, ok := tags.GPSBlock()
	require.True(t, ok)

	assert.Equal(t, geotag.TextValue("S"), block[1])
	assert.Equal(t, geotag.NumberValue(geotag.Rational{Num: 10, Den: 1}, geotag.Rational{Num: 0, Den: 1}, geotag.Rational{Num: 0, Den: 1}), block[2])
	assert.Equal(t, geotag.TextValue("E"), block[3])
	assert.Equal(t, geotag.NumberValue(geotag.Integer(0)), block[5])
	assert.Equal(t, geotag.NumberValue(geotag.Rational{Num: 5, Den: 1}), block[6])
	assert.Len(t, block, 6)
}

func TestReadTagsPNG(t *testing.T) {
	path := writeFile(t, "gps.png", withPNGChunk(encodePNG(t), "eXIf", gpsTIFF(t)))

	tags, err := New().ReadTags(path)

	require.NoError(t, err)
	assertExampleBlock(t, tags)
}

func TestReadTagsPNGWithExifPrefix(t *testing.T) {
	payload := append([]byte("Exif\x00\x00"), gpsTIFF(t)...)
	path := writeFile(t, "gps.png", withPNGChunk(encodePNG(t), "eXIf", payload))

	tags, err := New().ReadTags(path)

	require.NoError(t, err)
	assertExampleBlock(t, tags)
}

func TestReadTagsJPEG(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))
	plain := buf.Bytes()

	app1 := append([]byte("Exif\x00\x00"), gpsTIFF(t)...)
	segment := []byte{0xff, 0xe1}
	segment = binary.BigEndian.AppendUint16(segment, uint16(len(app1)+2))
	segment = append(segment, app1...)
	data := append(append(append([]byte{}, plain[:2]...), segment...), plain[2:]...)

	tags, err := New().ReadTags(writeFile(t, "gps.jpg", data))

	require.NoError(t, err)
	assertExampleBlock(t, tags)
}

func TestReadTagsWebP(t *testing.T) {
	tags, err := New().ReadTags(writeFile(t, "gps.webp", webpWithExif(gpsTIFF(t))))

	require.NoError(t, err)
	assertExampleBlock(t, tags)
}

func TestReadTagsWithoutExif(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"png", encodePNG(t)},
		{"webp", webpWithExif(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, err := New().ReadTags(writeFile(t, "plain."+tt.name, tt.data))
			require.NoError(t, err)
			assert.Nil(t, tags)
		})
	}
}

func TestReadTagsErrors(t *testing.T) {
	_, err := New().ReadTags(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New().ReadTags(writeFile(t, "notes.jpg", []byte("not an image")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPNGExifStopsAtIEND(t *testing.T) {
	data, err := pngExif(bytes.NewReader(encodePNG(t)))
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = pngExif(bytes.NewReader([]byte("GIF89a..")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWebPExifSkipsPaddedChunks(t *testing.T) {
	body := []byte("WEBP")
	body = append(body, riffChunk("ICCP", []byte{1, 2, 3})...)
	body = append(body, riffChunk("EXIF", []byte("Exif\x00\x00payload"))...)
	data := append([]byte("RIFF"), binary.LittleEndian.AppendUint32(nil, uint32(len(body)))...)
	data = append(data, body...)

	payload, err := webpExif(bytes.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), payload)
}

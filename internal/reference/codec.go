package reference

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Binary layout, little-endian throughout:
//
//	magic        4 bytes "STDB"
//	format       u16 (currently 1)
//	version      u32 length + bytes
//	build        u32 length + bytes
//	snp count    u64
//	records      count * recordSize bytes (fields in struct order)
//	rsid table   u64 length + bytes (null-separated names)
var magic = [4]byte{'S', 'T', 'D', 'B'}

const formatVersion = 1

// recordSize is the wire size of one SnpRecord, fixed by the field
// widths: u32 + u8 + u32 + u8 + u16 + u64.
const recordSize = 4 + 1 + 4 + 1 + 2 + 8

// maxStringLen bounds the header strings and the rsID table so a
// corrupt length prefix cannot drive a huge allocation.
const maxStringLen = 1 << 30

// Decode deserializes a reference database from its uncompressed binary
// form. Any structural problem yields a single descriptive error and no
// partial database.
func Decode(data []byte) (*Database, error) {
	r := bytes.NewReader(data)

	var m [4]byte
	if _, err := r.Read(m[:]); err != nil || m != magic {
		return nil, fmt.Errorf("decode reference database: bad magic %q", m[:])
	}

	var format uint16
	if err := binary.Read(r, binary.LittleEndian, &format); err != nil {
		return nil, fmt.Errorf("decode reference database: read format: %w", err)
	}
	if format != formatVersion {
		return nil, fmt.Errorf("decode reference database: unsupported format %d", format)
	}

	version, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("decode reference database: read version: %w", err)
	}
	build, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("decode reference database: read build: %w", err)
	}

	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("decode reference database: read snp count: %w", err)
	}
	if count > uint64(r.Len())/recordSize {
		return nil, fmt.Errorf("decode reference database: truncated: %d records declared, %d bytes remain", count, r.Len())
	}

	records := make([]SnpRecord, count)
	for i := range records {
		if err := decodeRecord(r, &records[i]); err != nil {
			return nil, fmt.Errorf("decode reference database: record %d: %w", i, err)
		}
	}

	var tableLen uint64
	if err := binary.Read(r, binary.LittleEndian, &tableLen); err != nil {
		return nil, fmt.Errorf("decode reference database: read rsid table length: %w", err)
	}
	if tableLen > uint64(r.Len()) {
		return nil, fmt.Errorf("decode reference database: truncated rsid table: %d declared, %d remain", tableLen, r.Len())
	}
	table := make([]byte, tableLen)
	if _, err := r.Read(table); err != nil && tableLen > 0 {
		return nil, fmt.Errorf("decode reference database: read rsid table: %w", err)
	}

	return &Database{
		Version:   version,
		Build:     build,
		SNPCount:  int(count),
		Records:   records,
		RSIDTable: string(table),
	}, nil
}

func decodeRecord(r *bytes.Reader, rec *SnpRecord) error {
	for _, field := range []interface{}{
		&rec.RSIDIndex,
		&rec.Chromosome,
		&rec.Position,
		&rec.RefAltFlags,
		&rec.MAF,
		&rec.SampleGenotypes,
	} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return err
		}
	}
	return nil
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxStringLen || uint64(n) > uint64(r.Len()) {
		return "", fmt.Errorf("string length %d exceeds remaining input", n)
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(buf); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

// Encode serializes a database to the binary layout Decode reads. It is
// the companion used by database construction tooling and tests.
func Encode(db *Database) ([]byte, error) {
	if db.SNPCount != len(db.Records) {
		return nil, fmt.Errorf("encode reference database: snp count %d does not match %d records",
			db.SNPCount, len(db.Records))
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	binary.Write(&buf, binary.LittleEndian, uint16(formatVersion))
	writeString(&buf, db.Version)
	writeString(&buf, db.Build)
	binary.Write(&buf, binary.LittleEndian, uint64(len(db.Records)))

	for i := range db.Records {
		rec := &db.Records[i]
		binary.Write(&buf, binary.LittleEndian, rec.RSIDIndex)
		binary.Write(&buf, binary.LittleEndian, rec.Chromosome)
		binary.Write(&buf, binary.LittleEndian, rec.Position)
		binary.Write(&buf, binary.LittleEndian, rec.RefAltFlags)
		binary.Write(&buf, binary.LittleEndian, rec.MAF)
		binary.Write(&buf, binary.LittleEndian, rec.SampleGenotypes)
	}

	binary.Write(&buf, binary.LittleEndian, uint64(len(db.RSIDTable)))
	buf.WriteString(db.RSIDTable)

	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint32(len(s)))
	buf.WriteString(s)
}

package cep

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// Layout satu record alamat di disk. Semua offset dihitung sekali sebagai
// konstanta; tidak ada reinterpretasi memori mentah.
const (
	publicPlaceWidth = 72
	districtWidth    = 72
	cityWidth        = 72
	ufWidth          = 72
	initialsWidth    = 2
	cepWidth         = 8
	trailerWidth     = 2

	publicPlaceOffset = 0
	districtOffset    = publicPlaceOffset + publicPlaceWidth
	cityOffset        = districtOffset + districtWidth
	ufOffset          = cityOffset + cityWidth
	initialsOffset    = ufOffset + ufWidth
	cepOffset         = initialsOffset + initialsWidth
	trailerOffset     = cepOffset + cepWidth

	// RecordSize adalah lebar tetap satu AddressRecord (300 byte).
	RecordSize = trailerOffset + trailerWidth

	// KeyLength adalah panjang kunci pencarian (field cep).
	KeyLength = cepWidth
)

// AddressRecord is one fixed-width address entry. Fields hold the raw bytes
// exactly as stored, padding included.
type AddressRecord struct {
	PublicPlaceRaw [publicPlaceWidth]byte
	DistrictRaw    [districtWidth]byte
	CityRaw        [cityWidth]byte
	UFRaw          [ufWidth]byte
	InitialsRaw    [initialsWidth]byte
	CEPRaw         [cepWidth]byte
	Trailer        [trailerWidth]byte
}

// NewAddressRecord builds a space padded record. Values longer than their
// field are truncated.
func NewAddressRecord(publicPlace, district, city, uf, initials, cep string) AddressRecord {
	var r AddressRecord
	pad(r.PublicPlaceRaw[:], publicPlace)
	pad(r.DistrictRaw[:], district)
	pad(r.CityRaw[:], city)
	pad(r.UFRaw[:], uf)
	pad(r.InitialsRaw[:], initials)
	pad(r.CEPRaw[:], cep)
	pad(r.Trailer[:], "")
	return r
}

func pad(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}

// DecodeRecord maps exactly RecordSize bytes onto an AddressRecord. The
// returned value never aliases b.
func DecodeRecord(b []byte) (AddressRecord, error) {
	var r AddressRecord
	if len(b) != RecordSize {
		return r, errors.Wrapf(ErrInvalidRecordSize, "got %d bytes, want %d", len(b), RecordSize)
	}
	copy(r.PublicPlaceRaw[:], b[publicPlaceOffset:districtOffset])
	copy(r.DistrictRaw[:], b[districtOffset:cityOffset])
	copy(r.CityRaw[:], b[cityOffset:ufOffset])
	copy(r.UFRaw[:], b[ufOffset:initialsOffset])
	copy(r.InitialsRaw[:], b[initialsOffset:cepOffset])
	copy(r.CEPRaw[:], b[cepOffset:trailerOffset])
	copy(r.Trailer[:], b[trailerOffset:RecordSize])
	return r, nil
}

// Encode writes the record into dst, which must hold at least RecordSize bytes.
func (r *AddressRecord) Encode(dst []byte) error {
	if len(dst) < RecordSize {
		return errors.Wrapf(ErrInvalidRecordSize, "buffer has %d bytes, want %d", len(dst), RecordSize)
	}
	copy(dst[publicPlaceOffset:], r.PublicPlaceRaw[:])
	copy(dst[districtOffset:], r.DistrictRaw[:])
	copy(dst[cityOffset:], r.CityRaw[:])
	copy(dst[ufOffset:], r.UFRaw[:])
	copy(dst[initialsOffset:], r.InitialsRaw[:])
	copy(dst[cepOffset:], r.CEPRaw[:])
	copy(dst[trailerOffset:], r.Trailer[:])
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r AddressRecord) MarshalBinary() ([]byte, error) {
	out := make([]byte, RecordSize)
	if err := r.Encode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *AddressRecord) UnmarshalBinary(b []byte) error {
	dec, err := DecodeRecord(b)
	if err != nil {
		return err
	}
	*r = dec
	return nil
}

// text mengikuti semantik %.Ns: berhenti di NUL pertama, lalu padding di
// kanan dibuang.
func text(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimRight(b, " "))
}

func (r *AddressRecord) PublicPlace() string { return text(r.PublicPlaceRaw[:]) }
func (r *AddressRecord) District() string    { return text(r.DistrictRaw[:]) }
func (r *AddressRecord) City() string        { return text(r.CityRaw[:]) }
func (r *AddressRecord) UF() string          { return text(r.UFRaw[:]) }
func (r *AddressRecord) Initials() string    { return text(r.InitialsRaw[:]) }

// CEP returns the key field as stored, without trimming.
func (r *AddressRecord) CEP() string { return string(r.CEPRaw[:]) }

// Fields returns the six printable fields in file order.
func (r *AddressRecord) Fields() []string {
	return []string{r.PublicPlace(), r.District(), r.City(), r.UF(), r.Initials(), r.CEP()}
}

package psfont

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	// ErrInvalidFaceHandle is returned for a nil face or a face without a driver.
	ErrInvalidFaceHandle = errors.New("invalid face handle")
	// ErrInvalidArgument is returned when the driver lacks a capability or an
	// argument is out of range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownFileFormat is returned when no registered driver accepts the data.
	ErrUnknownFileFormat = errors.New("unknown file format")
	// ErrInvalidFileFormat is returned when a driver accepts the data but cannot
	// parse it.
	ErrInvalidFileFormat = errors.New("invalid file format")
)

// Driver turns raw font bytes into a Face.
type Driver interface {
	Name() string
	Probe(data []byte) bool
	Load(data []byte) (*Face, error)
}

// MultiMasterService is implemented by drivers that support Multiple Master fonts.
type MultiMasterService interface {
	MultiMaster(face *Face) (*MultiMaster, error)
	SetDesignCoordinates(face *Face, coords []int) error
	SetBlendCoordinates(face *Face, coords []float64) error
	WeightVector(face *Face) ([]float64, error)
}

// BlendService is implemented by drivers that expose the full blend
// description of a Multiple Master face.
type BlendService interface {
	Blend(face *Face) (*Blend, error)
}

// PSInfoService is implemented by drivers that expose the PostScript FontInfo.
type PSInfoService interface {
	FontInfo(face *Face) (*FontInfo, error)
	HasGlyphNames(face *Face) bool
}

// PSPrivateService is implemented by drivers that expose the Private dictionary.
type PSPrivateService interface {
	Private(face *Face) (*Private, error)
}

// CIDInfoService is implemented by drivers for CID-keyed fonts.
type CIDInfoService interface {
	CIDInfo(face *Face) (*CIDFaceInfo, error)
}

// FaceFlags describe properties of a loaded face.
type FaceFlags uint32

const (
	FaceFlagFixedWidth FaceFlags = 1 << iota
	FaceFlagGlyphNames
	FaceFlagMultipleMasters
	FaceFlagCIDKeyed
)

// Has reports whether all bits of flag are set.
func (f FaceFlags) Has(flag FaceFlags) bool {
	return f&flag == flag
}

// Face is a loaded font. The driver owns the private data.
type Face struct {
	Driver         Driver
	FamilyName     string
	StyleName      string
	PostScriptName string
	NumGlyphs      int
	Flags          FaceFlags

	mu   sync.Mutex
	data any
}

// DriverName returns the name of the driver that loaded the face.
func (f *Face) DriverName() string {
	if f == nil || f.Driver == nil {
		return ""
	}
	return f.Driver.Name()
}

// Library is an ordered set of drivers.
type Library struct {
	drivers []Driver
}

// NewLibrary returns a library with the given drivers, probed in order.
func NewLibrary(drivers ...Driver) *Library {
	return &Library{drivers: drivers}
}

// DefaultLibrary returns a library with the type1, cid and sfnt drivers.
func DefaultLibrary() *Library {
	return NewLibrary(Type1Driver{}, CIDDriver{}, SFNTDriver{})
}

// AddDriver appends a driver to the probe order.
func (l *Library) AddDriver(d Driver) {
	l.drivers = append(l.drivers, d)
}

// Drivers returns the driver names in probe order.
func (l *Library) Drivers() []string {
	names := make([]string, 0, len(l.drivers))
	for _, d := range l.drivers {
		names = append(names, d.Name())
	}
	return names
}

// Open loads a face from data with the first driver whose probe accepts it.
func (l *Library) Open(data []byte) (*Face, error) {
	for _, d := range l.drivers {
		if !d.Probe(data) {
			continue
		}
		face, err := d.Load(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name(), err)
		}
		face.Driver = d
		return face, nil
	}
	return nil, ErrUnknownFileFormat
}

// OpenFile reads path and loads it with Open.
func (l *Library) OpenFile(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	return l.Open(data)
}

var defaultLibrary = DefaultLibrary()

// Open loads a face using the default drivers.
func Open(data []byte) (*Face, error) {
	return defaultLibrary.Open(data)
}

// OpenFile loads a face from disk using the default drivers.
func OpenFile(path string) (*Face, error) {
	return defaultLibrary.OpenFile(path)
}

func checkFace(face *Face) error {
	if face == nil || face.Driver == nil {
		return ErrInvalidFaceHandle
	}
	return nil
}

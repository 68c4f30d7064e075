package fonts

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"story-manager/core/library"
	"story-manager/core/psfont"
	"story-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrFontNotFound is returned for fonts missing from the bucket.
var ErrFontNotFound = errors.New("font not found")

// Service inspects the interpreter fonts of a library bucket.
type Service struct {
	client storage.Client
	bucket string
	lib    library.Config
	logger *zap.Logger
}

// NewService creates a new fonts service.
func NewService(client storage.Client, bucket string, lib library.Config, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		lib:    lib,
		logger: logger,
	}
}

// List returns the font objects under the fonts prefix, sorted by name.
func (s *Service) List(ctx context.Context) ([]FontSummary, error) {
	prefix := s.lib.FontsPath()
	out := make([]FontSummary, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list fonts: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		out = append(out, FontSummary{Name: name, Object: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Open downloads and opens a font. name is relative to the fonts prefix.
func (s *Service) Open(ctx context.Context, name string) (*psfont.Face, error) {
	object := s.lib.FontsPath() + strings.TrimPrefix(path.Clean("/"+name), "/")
	data, err := storage.ReadObject(ctx, s.client, s.bucket, object)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", object, err)
	}

	face, err := psfont.Open(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return face, nil
}

// Inspect opens a font and describes it.
func (s *Service) Inspect(ctx context.Context, name string) (*FontReport, error) {
	face, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Font opened", zap.String("font", name), zap.String("driver", face.DriverName()))
	return Describe(name, face), nil
}

// Blend sets the design coordinates of a Multiple Master font and returns the
// resulting weight vector.
func (s *Service) Blend(ctx context.Context, name string, design []int) (*BlendReport, error) {
	face, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return BlendFace(name, face, design)
}

// Describe builds the report of an opened face.
func Describe(name string, face *psfont.Face) *FontReport {
	report := &FontReport{
		Name:            name,
		Driver:          face.DriverName(),
		FamilyName:      face.FamilyName,
		StyleName:       face.StyleName,
		PostScriptName:  face.PostScriptName,
		NumGlyphs:       face.NumGlyphs,
		FixedWidth:      face.Flags.Has(psfont.FaceFlagFixedWidth),
		CIDKeyed:        face.Flags.Has(psfont.FaceFlagCIDKeyed),
		HasPSGlyphNames: psfont.HasPSGlyphNames(face),
	}

	if fi, err := psfont.GetPSFontInfo(face); err == nil {
		report.FontInfo = fi
	}
	if p, err := psfont.GetPSFontPrivate(face); err == nil {
		report.Private = p
	}
	if mm, err := psfont.GetMultiMaster(face); err == nil {
		report.MultiMaster = mm
	}
	if cid, err := psfont.GetCIDFaceInfo(face); err == nil {
		report.CID = cid
	}
	return report
}

// BlendFace applies design coordinates to face.
func BlendFace(name string, face *psfont.Face, design []int) (*BlendReport, error) {
	if err := psfont.SetMMDesignCoordinates(face, design); err != nil {
		return nil, fmt.Errorf("failed to set design coordinates: %w", err)
	}
	blend, err := psfont.GetMMBlend(face)
	if err != nil {
		return nil, fmt.Errorf("failed to get blend: %w", err)
	}
	return &BlendReport{
		Name:         name,
		Design:       design,
		WeightVector: blend.WeightVector,
		FontInfo:     blend.BlendedFontInfo(),
		Private:      blend.BlendedPrivate(),
	}, nil
}

// IsFontError reports whether err was caused by the font or the request
// rather than by storage.
func IsFontError(err error) bool {
	return errors.Is(err, psfont.ErrInvalidArgument) ||
		errors.Is(err, psfont.ErrUnknownFileFormat) ||
		errors.Is(err, psfont.ErrInvalidFileFormat)
}

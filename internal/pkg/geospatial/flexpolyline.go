package geospatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// HERE flexible polyline, format version 1.
// https://github.com/heremaps/flexible-polyline

const (
	flexVersion  = 1
	flexAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

// ThirdDim is the meaning of an optional third coordinate.
type ThirdDim int

const (
	ThirdDimAbsent    ThirdDim = 0
	ThirdDimLevel     ThirdDim = 1
	ThirdDimAltitude  ThirdDim = 2
	ThirdDimElevation ThirdDim = 3
)

var (
	ErrPolylineVersion = errors.New("flexpolyline: unsupported version")
	ErrPolylineChar    = errors.New("flexpolyline: invalid character")
	ErrPolylineTrunc   = errors.New("flexpolyline: truncated input")
)

var flexDecodeTable = func() [128]int8 {
	var t [128]int8
	for i := range t {
		t[i] = -1
	}
	for i, c := range flexAlphabet {
		t[c] = int8(i)
	}
	return t
}()

// DecodeFlexible decodes a flexible polyline into points. A third dimension,
// when present, lands in GeoPoint.Alt.
func DecodeFlexible(encoded string) ([]domain.GeoPoint, error) {
	values, err := decodeUnsigned(encoded)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, ErrPolylineTrunc
	}
	if values[0] != flexVersion {
		return nil, fmt.Errorf("%w: %d", ErrPolylineVersion, values[0])
	}

	header := values[1]
	precision := int(header & 15)
	third := ThirdDim((header >> 4) & 7)
	thirdPrecision := int((header >> 7) & 15)

	stride := 2
	if third != ThirdDimAbsent {
		stride = 3
	}
	body := values[2:]
	if len(body)%stride != 0 {
		return nil, ErrPolylineTrunc
	}

	scale := math.Pow10(precision)
	thirdScale := math.Pow10(thirdPrecision)

	points := make([]domain.GeoPoint, 0, len(body)/stride)
	var lat, lng, z int64
	for i := 0; i < len(body); i += stride {
		lat += toSigned(body[i])
		lng += toSigned(body[i+1])
		p := domain.GeoPoint{Lat: float64(lat) / scale, Lon: float64(lng) / scale}
		if stride == 3 {
			z += toSigned(body[i+2])
			p.Alt = float64(z) / thirdScale
		}
		points = append(points, p)
	}
	return points, nil
}

func decodeUnsigned(s string) ([]uint64, error) {
	var (
		out   []uint64
		acc   uint64
		shift uint
		open  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || flexDecodeTable[c] < 0 {
			return nil, fmt.Errorf("%w %q at %d", ErrPolylineChar, c, i)
		}
		v := uint64(flexDecodeTable[c])
		acc |= (v & 0x1F) << shift
		if v&0x20 != 0 {
			shift += 5
			open = true
			continue
		}
		out = append(out, acc)
		acc, shift, open = 0, 0, false
	}
	if open {
		return nil, ErrPolylineTrunc
	}
	return out, nil
}

func toSigned(u uint64) int64 {
	v := int64(u >> 1)
	if u&1 != 0 {
		v = ^v
	}
	return v
}

// Package bands maps a raster's numbered bands to their spectral roles.
//
// Resolution follows one policy: when any band description names a role,
// descriptions are authoritative and unlabeled bands get no role; otherwise
// the chosen positional convention applies.
package bands

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/forest-guardian/agro-report-poc/internal/raster"
)

type Role string

const (
	Red     Role = "red"
	Green   Role = "green"
	Blue    Role = "blue"
	NIR     Role = "nir"
	RedEdge Role = "red-edge"
	SWIR    Role = "swir"
)

// Required roles must resolve before any index can be computed.
var Required = []Role{Red, Green, Blue}

var (
	ErrMissingRole   = errors.New("band role not resolvable")
	ErrAmbiguousRole = errors.New("band role claimed by more than one band")
)

// Convention is a fixed positional band order used when descriptions are absent.
type Convention string

const (
	// ConventionRGBN is GDAL/GeoTIFF order: red, green, blue, NIR, red-edge, SWIR.
	ConventionRGBN Convention = "rgbn"
	// ConventionBGRN is OpenCV byte order: blue, green, red, NIR, red-edge, SWIR.
	ConventionBGRN Convention = "bgrn"
)

var conventionOrder = map[Convention][]Role{
	ConventionRGBN: {Red, Green, Blue, NIR, RedEdge, SWIR},
	ConventionBGRN: {Blue, Green, Red, NIR, RedEdge, SWIR},
}

// ParseConvention accepts "rgbn" and "bgrn"; empty selects ConventionRGBN.
func ParseConvention(s string) (Convention, error) {
	switch c := Convention(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ConventionRGBN, nil
	case ConventionRGBN, ConventionBGRN:
		return c, nil
	default:
		return "", fmt.Errorf("unknown band convention %q, expected %q or %q", s, ConventionRGBN, ConventionBGRN)
	}
}

// Keywords are whole words or word sequences of a description, tested in
// this order so that "red edge" and "near infrared" win over plain "red". A
// description word may carry a numeric suffix ("swir1", "nir2").
var keywords = []struct {
	role  Role
	words []string
}{
	{RedEdge, []string{"red edge", "rededge", "b05", "b06", "b07"}},
	{NIR, []string{"nir", "near infrared", "infrared", "near ir", "ir", "b08", "b8a"}},
	{SWIR, []string{"swir", "shortwave", "b11", "b12"}},
	{Red, []string{"red", "b04"}},
	{Green, []string{"green", "b03"}},
	{Blue, []string{"blue", "b02"}},
}

// words splits a description on every non alphanumeric rune.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// wordMatches reports whether token is word, optionally followed by digits.
func wordMatches(token, word string) bool {
	rest, ok := strings.CutPrefix(token, word)
	if !ok {
		return false
	}
	return strings.TrimFunc(rest, unicode.IsDigit) == ""
}

func containsPhrase(tokens, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, word := range phrase {
			if !wordMatches(tokens[i+j], word) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func roleFromDescription(description string) (Role, bool) {
	tokens := words(description)
	if len(tokens) == 0 {
		return "", false
	}
	for _, kw := range keywords {
		for _, word := range kw.words {
			if containsPhrase(tokens, strings.Fields(word)) {
				return kw.role, true
			}
		}
	}
	return "", false
}

// Assignment maps a role to a zero-based band index.
type Assignment struct {
	roles    map[Role]int
	FromText bool
}

func (a Assignment) Index(role Role) (int, bool) {
	i, ok := a.roles[role]
	return i, ok
}

func (a Assignment) Has(role Role) bool {
	_, ok := a.roles[role]
	return ok
}

func (a Assignment) String() string {
	parts := []string{}
	for _, role := range []Role{Red, Green, Blue, NIR, RedEdge, SWIR} {
		if i, ok := a.roles[role]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", role, i))
		}
	}
	return strings.Join(parts, " ")
}

// NewAssignment builds an assignment from an explicit role map, checking the
// required roles and index range.
func NewAssignment(roles map[Role]int, count int) (Assignment, error) {
	a := Assignment{roles: make(map[Role]int, len(roles))}
	for role, i := range roles {
		if i < 0 || i >= count {
			return Assignment{}, &raster.ValidationError{Err: ErrMissingRole, Detail: fmt.Sprintf("%s points at band %d of %d", role, i, count)}
		}
		a.roles[role] = i
	}
	return a, a.checkRequired()
}

func (a Assignment) checkRequired() error {
	for _, role := range Required {
		if !a.Has(role) {
			return &raster.ValidationError{Err: ErrMissingRole, Detail: string(role)}
		}
	}
	return nil
}

// Resolve assigns roles for count bands with the given descriptions.
func Resolve(descriptions []string, count int, conv Convention) (Assignment, error) {
	if count < raster.MinBands {
		return Assignment{}, &raster.ValidationError{Err: raster.ErrTooFewBands, Detail: fmt.Sprintf("got %d, need at least %d", count, raster.MinBands)}
	}

	a := Assignment{roles: map[Role]int{}}
	for i, description := range descriptions {
		if i >= count {
			break
		}
		role, ok := roleFromDescription(description)
		if !ok {
			continue
		}
		if j, taken := a.roles[role]; taken {
			return Assignment{}, &raster.ValidationError{
				Err:    ErrAmbiguousRole,
				Detail: fmt.Sprintf("%s: band %d %q and band %d %q", role, j, descriptions[j], i, description),
			}
		}
		a.roles[role] = i
	}
	if len(a.roles) > 0 {
		a.FromText = true
		return a, a.checkRequired()
	}

	order, ok := conventionOrder[conv]
	if !ok {
		return Assignment{}, fmt.Errorf("unknown band convention %q", conv)
	}
	for i, role := range order {
		if i >= count {
			break
		}
		a.roles[role] = i
	}
	return a, a.checkRequired()
}

// ResolveRaster resolves roles from the raster's own band descriptions.
func ResolveRaster(r *raster.Raster, conv Convention) (Assignment, error) {
	return Resolve(r.Descriptions(), r.BandCount(), conv)
}

package osversion

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
)

// DefaultAlephPath is the marker written when the OS image was installed.
const DefaultAlephPath = "/.coreos-aleph-version.json"

// Aleph is the install-time version marker.
type Aleph struct {
	Build string `json:"build"`
	Ref   string `json:"ref,omitempty"`
	ImgID string `json:"imgid,omitempty"`
}

// ReadAleph returns the original OS version recorded in the marker at path.
func ReadAleph(path string) (string, error) {
	aleph, err := LoadAleph(path)
	if err != nil {
		return "", err
	}
	return aleph.Build, nil
}

// LoadAleph reads and parses the marker at path. The build field is required.
func LoadAleph(path string) (Aleph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Aleph{}, fmt.Errorf("%w: read aleph version %s: %w", inventory.ErrIO, path, err)
	}
	return parseAleph(data)
}

func parseAleph(data []byte) (Aleph, error) {
	if !gjson.ValidBytes(data) {
		return Aleph{}, fmt.Errorf("%w: aleph version: invalid json", inventory.ErrParse)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Aleph{}, fmt.Errorf("%w: aleph version: expected object, got %s", inventory.ErrParse, doc.Type)
	}
	build := doc.Get("build")
	if !build.Exists() {
		return Aleph{}, fmt.Errorf("%w: aleph version: missing build field", inventory.ErrParse)
	}
	if build.Type != gjson.String || build.Str == "" {
		return Aleph{}, fmt.Errorf("%w: aleph version: build is not a non-empty string", inventory.ErrParse)
	}
	return Aleph{
		Build: build.Str,
		Ref:   doc.Get("ref").String(),
		ImgID: doc.Get("imgid").String(),
	}, nil
}

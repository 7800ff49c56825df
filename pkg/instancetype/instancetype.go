package instancetype

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
	"github.com/x1thexxx-lgtm/pinger/pkg/platform"
)

// DefaultMetadataPath is the env-style file afterburn writes on cloud boots.
const DefaultMetadataPath = "/run/metadata/afterburn"

// ErrNotCloud is returned when asked to resolve a non-cloud platform.
var ErrNotCloud = errors.New("platform has no instance-type metadata")

type extractor struct {
	key   string
	shape func(string) string
}

var extractors = map[string]extractor{
	platform.Aliyun:    {key: "AFTERBURN_ALIYUN_INSTANCE_TYPE"},
	platform.AWS:       {key: "AFTERBURN_AWS_INSTANCE_TYPE"},
	platform.Azure:     {key: "AFTERBURN_AZURE_VMSIZE"},
	platform.GCP:       {key: "AFTERBURN_GCP_MACHINE_TYPE", shape: lastSegment},
	platform.OpenStack: {key: "AFTERBURN_OPENSTACK_INSTANCE_TYPE"},
}

// Read returns the instance type of a cloud platform from the metadata file at path.
func Read(path string, p platform.Platform) (string, error) {
	ex, ok := extractors[p.Name]
	if !p.IsCloud() || !ok {
		return "", fmt.Errorf("%w: %s", ErrNotCloud, p.Name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read metadata %s: %w", inventory.ErrIO, path, err)
	}
	vars, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: metadata %s: %w", inventory.ErrParse, path, err)
	}
	value := strings.TrimSpace(vars[ex.key])
	if ex.shape != nil {
		value = ex.shape(value)
	}
	if value == "" {
		return "", fmt.Errorf("%w: metadata %s: %s not set", inventory.ErrParse, path, ex.key)
	}
	return value, nil
}

// lastSegment strips a resource path such as
// "projects/123/zones/us-central1-a/machineTypes/n1-standard-1".
func lastSegment(v string) string {
	if i := strings.LastIndex(v, "/"); i >= 0 {
		return v[i+1:]
	}
	return v
}

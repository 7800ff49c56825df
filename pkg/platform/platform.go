package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
)

// DefaultKernelArgsPath is where the running kernel exposes its command line.
const DefaultKernelArgsPath = "/proc/cmdline"

// platformFlag is the boot parameter recording the provisioning platform.
const platformFlag = "ignition.platform.id"

// Metal is reported when the boot arguments carry no platform id.
const Metal = "metal"

// Kind groups platforms by the metadata they can offer.
type Kind int

const (
	// KindBareMetal is physical hardware without a hypervisor.
	KindBareMetal Kind = iota
	// KindHypervisor is a virtual machine without instance-type metadata.
	KindHypervisor
	// KindCloud is a cloud provider that exposes an instance type.
	KindCloud
)

func (k Kind) String() string {
	switch k {
	case KindBareMetal:
		return "bare-metal"
	case KindHypervisor:
		return "hypervisor"
	case KindCloud:
		return "cloud"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Cloud provider identifiers with instance-type metadata.
const (
	Aliyun    = "aliyun"
	AWS       = "aws"
	Azure     = "azure"
	GCP       = "gcp"
	OpenStack = "openstack"
)

var cloudProviders = map[string]struct{}{
	Aliyun:    {},
	AWS:       {},
	Azure:     {},
	GCP:       {},
	OpenStack: {},
}

// Platform is the virtualization or cloud context a machine runs under.
type Platform struct {
	Kind Kind
	Name string
}

// Classify turns a platform identifier into a Platform.
// Identifiers outside the known cloud set that are not "metal" are treated
// as hypervisors: they carry no instance-type metadata.
func Classify(id string) Platform {
	name := normalize(id)
	if name == "" || name == Metal {
		return Platform{Kind: KindBareMetal, Name: Metal}
	}
	if _, ok := cloudProviders[name]; ok {
		return Platform{Kind: KindCloud, Name: name}
	}
	return Platform{Kind: KindHypervisor, Name: name}
}

// IsCloud reports whether instance-type resolution applies.
func (p Platform) IsCloud() bool { return p.Kind == KindCloud }

func (p Platform) String() string { return p.Name }

// Detect reads the kernel command line at path and classifies the platform.
func Detect(path string) (Platform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Platform{}, fmt.Errorf("%w: read kernel args %s: %w", inventory.ErrIO, path, err)
	}
	return Classify(Parse(string(data))), nil
}

// Parse extracts the platform identifier from a kernel command line.
// The last occurrence of the flag wins, mirroring kernel parameter handling.
// A missing or empty flag yields Metal.
func Parse(cmdline string) string {
	id := ""
	for _, token := range strings.Fields(cmdline) {
		key, value, found := strings.Cut(token, "=")
		if key != platformFlag {
			continue
		}
		if !found {
			id = ""
			continue
		}
		id = normalize(value)
	}
	if id == "" {
		return Metal
	}
	return id
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	return strings.ToLower(strings.TrimSpace(v))
}

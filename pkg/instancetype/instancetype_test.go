package instancetype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
	"github.com/x1thexxx-lgtm/pinger/pkg/platform"
)

const metadata = `AFTERBURN_ALIYUN_INSTANCE_TYPE=ecs.g6.large
AFTERBURN_AWS_INSTANCE_TYPE=m5.large
AFTERBURN_AWS_REGION=us-east-1
AFTERBURN_AZURE_VMSIZE=Standard_D2s_v3
AFTERBURN_GCP_MACHINE_TYPE=projects/123456/machineTypes/n1-standard-1
AFTERBURN_OPENSTACK_INSTANCE_TYPE=m1.small
`

func writeMetadata(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "afterburn")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	path := writeMetadata(t, metadata)
	cases := map[string]string{
		platform.Aliyun:    "ecs.g6.large",
		platform.AWS:       "m5.large",
		platform.Azure:     "Standard_D2s_v3",
		platform.GCP:       "n1-standard-1",
		platform.OpenStack: "m1.small",
	}
	for name, want := range cases {
		got, err := Read(path, platform.Classify(name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestReadGCPPlainValue(t *testing.T) {
	path := writeMetadata(t, "AFTERBURN_GCP_MACHINE_TYPE=e2-medium\n")
	got, err := Read(path, platform.Classify(platform.GCP))
	require.NoError(t, err)
	assert.Equal(t, "e2-medium", got)
}

func TestReadMissingKey(t *testing.T) {
	path := writeMetadata(t, "AFTERBURN_AWS_REGION=us-east-1\n")
	_, err := Read(path, platform.Classify(platform.AWS))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrParse)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "afterburn"), platform.Classify(platform.Azure))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrIO)
}

func TestReadNotCloud(t *testing.T) {
	for _, name := range []string{"metal", "qemu", "digitalocean"} {
		_, err := Read(writeMetadata(t, metadata), platform.Classify(name))
		assert.ErrorIs(t, err, ErrNotCloud, name)
	}
}

package inventory

import (
	"sort"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockIdentity(level string) Identity {
	platform := "mock-qemu"
	if ParseLevel(level) == LevelFull {
		platform = "mock-gcp"
	}
	return NewIdentity(ParseLevel(level), platform, "30.20190923.dev.2-2", "mock-os-version", omit.From("mock-instance-type"))
}

func TestDataMinimal(t *testing.T) {
	want := map[string]string{
		"level":               "minimal",
		"platform":            "mock-qemu",
		"original_os_version": "30.20190923.dev.2-2",
		"current_os_version":  "mock-os-version",
		"instance_type":       "mock-instance-type",
	}
	if diff := cmp.Diff(want, mockIdentity("minimal").Data()); diff != "" {
		t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestDataFull(t *testing.T) {
	want := map[string]string{
		"level":               "full",
		"platform":            "mock-gcp",
		"original_os_version": "30.20190923.dev.2-2",
		"current_os_version":  "mock-os-version",
		"instance_type":       "mock-instance-type",
	}
	if diff := cmp.Diff(want, mockIdentity("full").Data()); diff != "" {
		t.Fatalf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestDataUnsetInstanceType(t *testing.T) {
	id := NewIdentity(LevelMinimal, "mock-qemu", "30.20190923.dev.2-2", "mock-os-version", omit.Val[string]{})

	vars := id.Data()
	v, ok := vars[KeyInstanceType]
	require.True(t, ok)
	assert.Equal(t, "", v)

	_, set := id.InstanceType()
	assert.False(t, set)
}

func TestDataKeysStable(t *testing.T) {
	want := append([]string(nil), Keys...)
	sort.Strings(want)
	for _, level := range []string{"minimal", "full", "bogus", ""} {
		got := make([]string, 0, len(want))
		for k := range mockIdentity(level).Data() {
			got = append(got, k)
		}
		sort.Strings(got)
		assert.Equal(t, want, got, "level %q", level)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"minimal":   LevelMinimal,
		"full":      LevelFull,
		" full ":    LevelFull,
		"":          LevelMinimal,
		"FULL":      LevelMinimal,
		"extended":  LevelMinimal,
		"minimal\n": LevelMinimal,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), "ParseLevel(%q)", raw)
	}
}

func TestNewIdentityNormalizesLevel(t *testing.T) {
	id := NewIdentity(Level("verbose"), "metal", "a", "b", omit.Val[string]{})
	assert.Equal(t, LevelMinimal, id.Level())
	assert.Equal(t, "minimal", id.Data()[KeyLevel])
}

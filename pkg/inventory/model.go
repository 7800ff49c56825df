package inventory

import "github.com/aarondl/opt/omit"

// Keys of the flattened identity record.
const (
	KeyLevel             = "level"
	KeyPlatform          = "platform"
	KeyOriginalOSVersion = "original_os_version"
	KeyCurrentOSVersion  = "current_os_version"
	KeyInstanceType      = "instance_type"
)

// Keys lists every key Identity.Data returns, in reporting order.
var Keys = []string{KeyLevel, KeyPlatform, KeyOriginalOSVersion, KeyCurrentOSVersion, KeyInstanceType}

// Identity describes the collected facts about one machine.
// It is built once per collection run and never modified afterwards.
type Identity struct {
	level             Level
	platform          string
	originalOSVersion string
	currentOSVersion  string
	instanceType      omit.Val[string]
}

// NewIdentity assembles an identity record.
func NewIdentity(level Level, platform, originalOSVersion, currentOSVersion string, instanceType omit.Val[string]) Identity {
	return Identity{
		level:             level.Normalize(),
		platform:          platform,
		originalOSVersion: originalOSVersion,
		currentOSVersion:  currentOSVersion,
		instanceType:      instanceType,
	}
}

func (id Identity) Level() Level { return id.level }

func (id Identity) Platform() string { return id.platform }

func (id Identity) OriginalOSVersion() string { return id.originalOSVersion }

func (id Identity) CurrentOSVersion() string { return id.currentOSVersion }

// InstanceType returns the cloud instance type and whether it applies.
func (id Identity) InstanceType() (string, bool) { return id.instanceType.Get() }

// Data flattens the identity into the record handed to reporters.
// The key set is the same for every level; an unset instance type is "".
func (id Identity) Data() map[string]string {
	return map[string]string{
		KeyLevel:             id.level.String(),
		KeyPlatform:          id.platform,
		KeyOriginalOSVersion: id.originalOSVersion,
		KeyCurrentOSVersion:  id.currentOSVersion,
		KeyInstanceType:      id.instanceType.GetOrZero(),
	}
}

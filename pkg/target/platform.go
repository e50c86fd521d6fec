package target

import (
	"fmt"
	"strings"
)

// Platform identifies the OS/architecture a module is being built for.
type Platform string

const (
	Win64      Platform = "Win64"
	Linux      Platform = "Linux"
	LinuxArm64 Platform = "LinuxArm64"
	Mac        Platform = "Mac"
	IOS        Platform = "IOS"
	Android    Platform = "Android"
)

// Platforms lists every platform the tool knows about, supported or not.
var Platforms = []Platform{Win64, Linux, LinuxArm64, Mac, IOS, Android}

var platformAliases = map[string]Platform{
	"win64":       Win64,
	"windows":     Win64,
	"linux":       Linux,
	"linuxarm64":  LinuxArm64,
	"linux-arm64": LinuxArm64,
	"mac":         Mac,
	"macos":       Mac,
	"darwin":      Mac,
	"ios":         IOS,
	"android":     Android,
}

func ParsePlatform(s string) (Platform, error) {
	if p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}

	return "", fmt.Errorf("unknown platform: %s", s)
}

func (p Platform) String() string {
	return string(p)
}

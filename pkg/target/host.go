package target

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// Host returns the platform of the machine running the build, which is the
// target used when none is given explicitly.
func Host() (Platform, error) {
	info, err := host.Info()
	if err != nil {
		return "", err
	}

	return hostPlatform(info.OS, info.KernelArch)
}

func hostPlatform(osName, arch string) (Platform, error) {
	switch osName {
	case "windows":
		return Win64, nil
	case "darwin":
		return Mac, nil
	case "linux":
		switch arch {
		case "aarch64", "arm64":
			return LinuxArm64, nil
		default:
			return Linux, nil
		}
	default:
		return "", fmt.Errorf("unsupported host operating system: %s/%s", osName, arch)
	}
}

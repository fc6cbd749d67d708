// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package config

import (
	"os"
	"path/filepath"
)

func GetDecomHome() string {
	if home := os.Getenv("DECOM_HOME"); home != "" {
		return home
	}
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		return filepath.Join("/home", sudoUser, ".decom")
	}
	return filepath.Join(os.Getenv("HOME"), ".decom")
}

func GetConfigPath() string {
	return filepath.Join(GetDecomHome(), "config.yaml")
}

func GetLogDir() string {
	return filepath.Join(GetDecomHome(), "logs")
}

func GetLogPath() string {
	return filepath.Join(GetLogDir(), "decom.log")
}

func GetLockPath() string {
	return filepath.Join(GetDecomHome(), "session.lock")
}

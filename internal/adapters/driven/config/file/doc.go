// Package file provides the TOML config file behind driven.ConfigStore.
//
// The file lives at ~/.teabag/config.toml unless another directory is
// given. Watch reloads it while a long-running command is serving.
package file

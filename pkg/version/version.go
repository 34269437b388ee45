// Copyright (C) 2025 Mirotech Team
//
// This file is part of miropay-woocommerce-sdk.
//
// miropay-woocommerce-sdk is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// miropay-woocommerce-sdk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with miropay-woocommerce-sdk.  If not, see <https://www.gnu.org/licenses/>.

// Package version exposes build and protocol version information for the CLI
// and for callers that want to report which SDK they run.
package version

import (
	"fmt"
	"runtime"

	miropay "github.com/MirotechTeam/miropay-woocommerce-sdk"
)

const (
	// Version is the SDK version
	Version = miropay.Version

	// APIVersion is the processor REST API version used as the signing prefix
	APIVersion = miropay.APIVersion

	// SAGEVersion is the SAGE core version the key contract comes from
	SAGEVersion = miropay.SAGEVersion
)

// Info describes the running SDK build.
type Info struct {
	SDKVersion  string `json:"sdkVersion"`
	APIVersion  string `json:"apiVersion"`
	SAGEVersion string `json:"sageVersion"`
	GoVersion   string `json:"goVersion"`
	Platform    string `json:"platform"`
}

// Get returns the version information of the running binary.
func Get() Info {
	return Info{
		SDKVersion:  Version,
		APIVersion:  APIVersion,
		SAGEVersion: SAGEVersion,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the info on a single line.
func (i Info) String() string {
	return fmt.Sprintf("miropay %s (api %s, %s, %s)", i.SDKVersion, i.APIVersion, i.GoVersion, i.Platform)
}

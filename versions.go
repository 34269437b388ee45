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

// Package miropay provides version information for the Miropay Go SDK and the
// processor API it targets.
package miropay

const (
	// Version is the current version of the SDK
	Version = "1.0.0-dev"

	// APIVersion is the processor REST API version. The signed path of every
	// request is prefixed with it, independent of the configured base URL.
	APIVersion = "v1"

	// SAGEVersion is the SAGE core version whose KeyPair contract the keys package implements
	SAGEVersion = "1.3.1"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	SDKVersion  string
	APIVersion  string
	SAGEVersion string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		SDKVersion:  Version,
		APIVersion:  APIVersion,
		SAGEVersion: SAGEVersion,
	}
}
